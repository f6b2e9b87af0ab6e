package api

import (
	"net/http"

	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
)

type otpSendRequest struct {
	Phone string `json:"phone"`
}

func (s *Server) handleOTPSend(w http.ResponseWriter, r *http.Request) {
	var req otpSendRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.AuthService.RequestOTP(r.Context(), req.Phone); err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]any{"sent": true})
}

type otpVerifyRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleOTPVerify(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.AuthService.VerifyOTP(r.Context(), req.Phone, req.OTP)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, authResponse{Token: token, User: user})
}

type pinSetRequest struct {
	PIN string `json:"pin"`
}

func (s *Server) handlePINSet(w http.ResponseWriter, r *http.Request) {
	var req pinSetRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.AuthService.SetPIN(r.Context(), userIDFromContext(r.Context()), req.PIN); err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]any{"updated": true})
}

type pinVerifyRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

func (s *Server) handlePINVerify(w http.ResponseWriter, r *http.Request) {
	var req pinVerifyRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.AuthService.LoginWithPIN(r.Context(), req.Phone, req.PIN)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, authResponse{Token: token, User: user})
}

// handleLogout is stateless on the server: the token simply stops being
// presented. The endpoint exists so clients have a single place to hook
// local cleanup.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Info("user logged out")
	respond(w, r, http.StatusOK, map[string]any{"logged_out": true})
}
