package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/future-self-ai/backend/internal/career"
	"github.com/future-self-ai/backend/internal/persona"
	"github.com/future-self-ai/backend/internal/resume"
	"github.com/future-self-ai/backend/internal/session"
)

type careerSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type chatRequest struct {
	SessionID string           `json:"session_id"`
	CareerID  string           `json:"career_id"`
	Message   string           `json:"message"`
	Profile   *persona.Profile `json:"profile,omitempty"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

type resumeRequest struct {
	SessionID  string `json:"session_id"`
	ResumeText string `json:"resume_text"`
}

type resumeResponse struct {
	Profile     resume.Profile `json:"profile"`
	ChunksAdded int            `json:"chunks_added"`
}

type storedResumeResponse struct {
	SessionID       string   `json:"session_id"`
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience"`
}

func (s *Server) handleListCareers(w http.ResponseWriter, r *http.Request) {
	summaries := make([]careerSummary, 0, len(s.careers))
	for _, id := range career.IDs(s.careers) {
		summaries = append(summaries, careerSummary{ID: id, Title: s.careers[id].Title})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCareerInsights(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.careers[id]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown career: "+id)
		return
	}
	writeJSON(w, http.StatusOK, career.InsightsFor(id, rec))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sessionID, response, err := s.answer(r, req)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown session: "+req.SessionID)
			return
		}
		log.Printf("server: chat: %v", err)
		writeError(w, http.StatusInternalServerError, "chat failed")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{SessionID: sessionID, Response: response})
}

// answer runs one chat turn: resolve or create the session, ask the
// engine, persist both turns. Shared by the REST and websocket handlers.
func (s *Server) answer(r *http.Request, req chatRequest) (string, string, error) {
	ctx := r.Context()

	var sess *session.Session
	var err error
	if req.SessionID == "" {
		p := persona.Default()
		if req.Profile != nil {
			p = persona.FromProfile(*req.Profile, req.CareerID)
		} else if req.CareerID != "" {
			p = persona.FromProfile(persona.Profile{}, req.CareerID)
		}
		sess, err = s.sessions.Create(ctx, req.CareerID, p)
	} else {
		sess, err = s.sessions.Get(ctx, req.SessionID)
	}
	if err != nil {
		return "", "", err
	}

	careerID := req.CareerID
	if careerID == "" {
		careerID = sess.CareerID
	}

	history, err := s.sessions.LastTurns(ctx, sess.ID, historyTurns)
	if err != nil {
		return "", "", err
	}

	response := s.engine.Answer(ctx, sess.Persona, req.Message, careerID, sess.ID, history)

	// Persistence failures lose history but never the response.
	if err := s.sessions.AddTurn(ctx, sess.ID, "user", req.Message); err != nil {
		log.Printf("server: storing user turn: %v", err)
	}
	if err := s.sessions.AddTurn(ctx, sess.ID, "assistant", response); err != nil {
		log.Printf("server: storing assistant turn: %v", err)
	}

	return sess.ID, response, nil
}

func (s *Server) handleResumeAnalyze(w http.ResponseWriter, r *http.Request) {
	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ResumeText == "" {
		writeError(w, http.StatusBadRequest, "resume_text is required")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if _, err := s.sessions.Get(r.Context(), req.SessionID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown session: "+req.SessionID)
			return
		}
		log.Printf("server: resume: %v", err)
		writeError(w, http.StatusInternalServerError, "resume analysis failed")
		return
	}

	profile := resume.Analyze(req.ResumeText)
	chunks := resume.Chunks(req.SessionID, profile)

	if err := s.sessions.SaveResumeProfile(r.Context(), req.SessionID, profile.AllSkills, profile.YearsExperience); err != nil {
		log.Printf("server: storing resume profile: %v", err)
	}

	s.store.ReplaceOwner(req.SessionID, chunks)
	if err := s.retriever.Rebuild(r.Context()); err != nil {
		log.Printf("server: rebuilding indexes after resume load: %v", err)
	}

	writeJSON(w, http.StatusOK, resumeResponse{Profile: profile, ChunksAdded: len(chunks)})
}

// handleResumeProfile returns the profile stored by a previous analyze
// call for the session.
func (s *Server) handleResumeProfile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	skills, years, err := s.sessions.ResumeProfile(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no resume profile for session: "+sessionID)
			return
		}
		log.Printf("server: resume profile: %v", err)
		writeError(w, http.StatusInternalServerError, "loading resume profile failed")
		return
	}
	writeJSON(w, http.StatusOK, storedResumeResponse{
		SessionID:       sessionID,
		Skills:          skills,
		YearsExperience: years,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
