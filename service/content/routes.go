package content

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pulsefeed/pulse-server/cmd/models"
	"github.com/pulsefeed/pulse-server/cmd/utils"
	"gorm.io/gorm"
)

type Handler struct {
	engine *Engine
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{engine: NewEngine(db)}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/posts", utils.AuthMiddleware(h.CreatePost)).Methods("POST")
	router.HandleFunc("/posts/{id}", utils.AuthMiddleware(h.UpdatePost)).Methods("PATCH")
	router.HandleFunc("/posts/{id}", utils.AuthMiddleware(h.DeletePost)).Methods("DELETE")
	router.HandleFunc("/posts/{id}/comments", utils.AuthMiddleware(h.CreateComment)).Methods("POST")
	router.HandleFunc("/comments/{id}", utils.AuthMiddleware(h.DeleteComment)).Methods("DELETE")
}

type createPostRequest struct {
	Content       string  `json:"content" validate:"required"`
	Language      *string `json:"language" validate:"omitempty,max=10"`
	IsPrivate     *bool   `json:"is_private"`
	Visibility    *string `json:"visibility" validate:"omitempty,oneof=public followers private"`
	ReplyToPostID *string `json:"reply_to_post_id" validate:"omitempty,uuid"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.GetActorFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createPostRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	in := CreatePostInput{
		Content:    req.Content,
		Language:   req.Language,
		IsPrivate:  req.IsPrivate,
		Visibility: req.Visibility,
	}
	if req.ReplyToPostID != nil {
		replyTo, err := uuid.Parse(*req.ReplyToPostID)
		if err != nil {
			utils.WriteError(w, models.ErrInvalidArgument)
			return
		}
		in.ReplyToPostID = &replyTo
	}

	post, err := h.engine.CreatePost(actor, in)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, post)
}

type updatePostRequest struct {
	Content    *string `json:"content" validate:"omitempty,min=1"`
	Language   *string `json:"language" validate:"omitempty,max=10"`
	IsPrivate  *bool   `json:"is_private"`
	Visibility *string `json:"visibility" validate:"omitempty,oneof=public followers private"`
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.GetActorFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	var req updatePostRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	post, err := h.engine.UpdatePost(actor, postID, UpdatePostInput{
		Content:    req.Content,
		Language:   req.Language,
		IsPrivate:  req.IsPrivate,
		Visibility: req.Visibility,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.GetActorFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	if err := h.engine.DeletePost(actor, postID); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type createCommentRequest struct {
	Content         string  `json:"content" validate:"required"`
	ParentCommentID *string `json:"parent_comment_id" validate:"omitempty,uuid"`
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.GetActorFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	var req createCommentRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	in := CreateCommentInput{PostID: postID, Content: req.Content}
	if req.ParentCommentID != nil {
		parent, err := uuid.Parse(*req.ParentCommentID)
		if err != nil {
			utils.WriteError(w, models.ErrInvalidArgument)
			return
		}
		in.ParentCommentID = &parent
	}

	comment, err := h.engine.CreateComment(actor, in)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.GetActorFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	commentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	if err := h.engine.DeleteComment(actor, commentID); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
