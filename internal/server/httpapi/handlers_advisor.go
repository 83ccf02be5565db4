package httpapi

import (
	"encoding/json"
	"net/http"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type insightBody struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}
	if req.Message == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	reply, err := s.advisorService.Chat(r.Context(), UserID(r.Context()), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.advisorService.Insights(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]insightBody, 0, len(insights))
	for _, in := range insights {
		result = append(result, insightBody(in))
	}
	writeJSON(w, http.StatusOK, result)
}
