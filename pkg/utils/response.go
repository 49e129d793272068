package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type Response struct {
	Status  int    `json:"status" example:"400"`
	Message string `json:"message" example:"Invalid request body"`
	Code    string `json:"code,omitempty" example:"validation"`
}

func RespondWithError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, Response{Status: status, Message: message})
}

// RespondWithCode adds a machine readable code to the error body.
func RespondWithCode(w http.ResponseWriter, status int, code, message string) {
	RespondWithJSON(w, status, Response{Status: status, Message: message, Code: code})
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("can't encode response", zap.Error(err))
	}
}
