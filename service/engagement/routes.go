package engagement

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
	router.HandleFunc("/posts/{id}/like", utils.AuthMiddleware(h.LikePost)).Methods("POST")
	router.HandleFunc("/posts/{id}/unlike", utils.AuthMiddleware(h.UnlikePost)).Methods("POST")
	router.HandleFunc("/posts/{id}/share", utils.AuthMiddleware(h.SharePost)).Methods("POST")
	router.HandleFunc("/posts/{id}/unshare", utils.AuthMiddleware(h.UnsharePost)).Methods("POST")
	router.HandleFunc("/users/{id}/follow", utils.AuthMiddleware(h.FollowUser)).Methods("POST")
	router.HandleFunc("/users/{id}/unfollow", utils.AuthMiddleware(h.UnfollowUser)).Methods("POST")
}

type likeRequest struct {
	Reaction string `json:"reaction" validate:"omitempty,max=20"`
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
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

	var req likeRequest
	if r.ContentLength > 0 {
		if err := utils.DecodeAndValidate(r, &req); err != nil {
			utils.WriteError(w, err)
			return
		}
	}

	like, created, err := h.engine.LikePost(actor, postID, req.Reaction)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"like":    like,
		"created": created,
	})
}

func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
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

	removed, err := h.engine.UnlikePost(actor, postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *Handler) SharePost(w http.ResponseWriter, r *http.Request) {
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

	share, created, err := h.engine.SharePost(actor, postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"share":   share,
		"created": created,
	})
}

func (h *Handler) UnsharePost(w http.ResponseWriter, r *http.Request) {
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

	removed, err := h.engine.UnsharePost(actor, postID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *Handler) FollowUser(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.GetActorFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	followedID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	follow, created, err := h.engine.FollowUser(actor, followedID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"follow":  follow,
		"created": created,
	})
}

func (h *Handler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.GetActorFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	followedID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	removed, err := h.engine.UnfollowUser(actor, followedID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
