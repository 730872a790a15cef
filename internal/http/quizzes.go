package http

import (
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/pkg/httpx"
)

type QuizzesHandler struct {
	QuizService *service.QuizService
}

type questionRequest struct {
	Text         string   `json:"text" validate:"required,min=1"`
	Options      []string `json:"options" validate:"required,min=2,max=6,dive,required"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0"`
	Explanation  string   `json:"explanation"`
}

type quizRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=200"`
	Description string            `json:"description" validate:"max=1000"`
	Questions   []questionRequest `json:"questions" validate:"required,min=1,dive"`
}

// takerQuestion is a question as shown to someone taking the quiz: no
// answer key, no explanation.
type takerQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ownerQuestion is the full question, shown on the edit endpoint only.
type ownerQuestion struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

type quizMetaResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type takerQuizResponse struct {
	quizMetaResponse
	Questions []takerQuestion `json:"questions"`
}

type ownerQuizResponse struct {
	quizMetaResponse
	Questions []ownerQuestion `json:"questions"`
}

func quizMeta(q domain.Quiz) quizMetaResponse {
	return quizMetaResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func newTakerQuizResponse(q domain.Quiz) takerQuizResponse {
	resp := takerQuizResponse{quizMetaResponse: quizMeta(q)}
	resp.Questions = make([]takerQuestion, 0, len(q.Questions))
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, takerQuestion{
			ID:      question.ID,
			Text:    question.Text,
			Options: question.Options,
		})
	}
	return resp
}

func newOwnerQuizResponse(q domain.Quiz) ownerQuizResponse {
	resp := ownerQuizResponse{quizMetaResponse: quizMeta(q)}
	resp.Questions = make([]ownerQuestion, 0, len(q.Questions))
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, ownerQuestion{
			ID:           question.ID,
			Text:         question.Text,
			Options:      question.Options,
			CorrectIndex: question.CorrectIndex,
			Explanation:  question.Explanation,
		})
	}
	return resp
}

func quizInputFromRequest(payload quizRequest) service.QuizInput {
	in := service.QuizInput{
		Title:       payload.Title,
		Description: payload.Description,
		Questions:   make([]service.QuestionInput, 0, len(payload.Questions)),
	}
	for _, q := range payload.Questions {
		in.Questions = append(in.Questions, service.QuestionInput{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}
	return in
}

// HandleCreate authors a new quiz.
//
//	@Summary		Create quiz
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		quizRequest	true	"Quiz with questions"
//	@Success		200		{object}	ownerQuizResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Validation failed"
//	@Router			/api/v1/quizzes/create [post].
func (h *QuizzesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[quizRequest](w, r)
	if !ok {
		return
	}

	userID := httpx.UserIDFromContext(r.Context())

	quiz, err := h.QuizService.Create(r.Context(), userID, quizInputFromRequest(payload))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newOwnerQuizResponse(quiz))
}

// HandleMyQuizzes lists the caller's quizzes.
//
//	@Summary		List own quizzes
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	quizMetaResponse
//	@Router			/api/v1/quizzes/my-quizzes [get].
func (h *QuizzesHandler) HandleMyQuizzes(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	quizzes, err := h.QuizService.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	metas := make([]quizMetaResponse, 0, len(quizzes))
	for _, q := range quizzes {
		metas = append(metas, quizMeta(q))
	}
	httpx.WriteJSON(w, http.StatusOK, metas)
}

// HandleGet returns a quiz for taking. The answer key is only included when
// the requester owns the quiz.
//
//	@Summary		Get quiz
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			quizID	path		string	true	"Quiz id"
//	@Success		200		{object}	takerQuizResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/api/v1/quizzes/{quizID} [get].
func (h *QuizzesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	quiz, err := h.QuizService.Get(r.Context(), r.PathValue("quizID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if quiz.OwnerID == userID {
		httpx.WriteJSON(w, http.StatusOK, newOwnerQuizResponse(quiz))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newTakerQuizResponse(quiz))
}

// HandleEdit returns the quiz with answer keys, owner only.
//
//	@Summary		Get quiz for editing
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			quizID	path		string	true	"Quiz id"
//	@Success		200		{object}	ownerQuizResponse
//	@Failure		403		{object}	httpx.ErrorResponse	"Not the owner"
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/api/v1/quizzes/edit/{quizID} [get].
func (h *QuizzesHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	quiz, err := h.QuizService.GetForEdit(r.Context(), r.PathValue("quizID"), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newOwnerQuizResponse(quiz))
}

// HandleUpdate replaces the quiz's metadata and questions, owner only.
//
//	@Summary		Update quiz
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			quizID	path		string		true	"Quiz id"
//	@Param			body	body		quizRequest	true	"Replacement quiz"
//	@Success		200		{object}	ownerQuizResponse
//	@Failure		403		{object}	httpx.ErrorResponse	"Not the owner"
//	@Router			/api/v1/quizzes/{quizID}/update [patch].
func (h *QuizzesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[quizRequest](w, r)
	if !ok {
		return
	}

	userID := httpx.UserIDFromContext(r.Context())

	quiz, err := h.QuizService.Update(r.Context(), r.PathValue("quizID"), userID, quizInputFromRequest(payload))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newOwnerQuizResponse(quiz))
}

// HandleDelete removes the quiz, owner only.
//
//	@Summary		Delete quiz
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			quizID	path		string	true	"Quiz id"
//	@Success		200		{object}	messageResponse
//	@Failure		403		{object}	httpx.ErrorResponse	"Not the owner"
//	@Router			/api/v1/quizzes/{quizID}/delete [delete].
func (h *QuizzesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	if err := h.QuizService.Delete(r.Context(), r.PathValue("quizID"), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "quiz deleted"})
}
