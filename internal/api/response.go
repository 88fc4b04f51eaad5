package api

import (
	"encoding/json"
	"net/http"

	"vcdesk/pkg/market"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Fixed result messages of the public routes.
const (
	resultSuccess            = "Success"
	resultIncorrectLogin     = "Incorrect Username or Password"
	resultSessionNotExist    = "It does not exist"
	resultUnauthorized       = "Unauthorized"
	resultInvalidRequest     = "Invalid Request"
	resultAlreadyExists      = "Already Exists"
	resultNotFound           = "Not Found"
	resultInternalError      = "Internal Server Error"
	resultUnknownExchange    = "Unknown Exchange"
	resultUnsupportedPutMode = "Unsupported Mode"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int) {
	writeJSON(w, status, market.Envelope{Status: market.StatusSuccess, Result: resultSuccess})
}

func writeFailure(w http.ResponseWriter, status int, result string) {
	writeJSON(w, status, market.Envelope{Status: market.StatusFailure, Result: result})
}
