package feed

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
	router.HandleFunc("/feed", h.GlobalFeed).Methods("GET")
	router.HandleFunc("/search", h.SearchPosts).Methods("GET")
	router.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	router.HandleFunc("/me/posts/{id}", utils.AuthMiddleware(h.GetPostAsOwner)).Methods("GET")
	router.HandleFunc("/posts/{id}/replies", h.Replies).Methods("GET")
	router.HandleFunc("/posts/{id}/comments", h.Comments).Methods("GET")
	router.HandleFunc("/posts/{id}/comments/count", h.CommentCount).Methods("GET")
	router.HandleFunc("/posts/{id}/shares", h.Shares).Methods("GET")
	router.HandleFunc("/posts/{id}/shares/count", h.ShareCount).Methods("GET")
	router.HandleFunc("/comments/{id}/replies", h.CommentReplies).Methods("GET")
	router.HandleFunc("/users/{id}/posts", h.AuthorFeed).Methods("GET")
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	post, err := h.engine.GetPost(postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) GetPostAsOwner(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.engine.GetPostAsOwner(actor, postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) GlobalFeed(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := utils.ParseLimitOffset(r, DefaultPageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	page, err := h.engine.GlobalFeed(limit, offset)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) AuthorFeed(w http.ResponseWriter, r *http.Request) {
	authorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r, DefaultPageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	page, err := h.engine.AuthorFeed(authorID, limit, offset)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) Replies(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	replies, err := h.engine.Replies(postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"replies": replies})
}

func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	comments, err := h.engine.Comments(postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

func (h *Handler) CommentReplies(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	replies, err := h.engine.CommentReplies(commentID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"replies": replies})
}

func (h *Handler) CommentCount(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	count, err := h.engine.CommentCount(postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) Shares(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	shares, err := h.engine.Shares(postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"shares": shares})
}

func (h *Handler) ShareCount(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	count, err := h.engine.ShareCount(postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := utils.ParseLimitOffset(r, DefaultPageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	page, err := h.engine.SearchPosts(r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}
