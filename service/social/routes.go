package social

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
	router.HandleFunc("/users/{id}/followers", h.Followers).Methods("GET")
	router.HandleFunc("/users/{id}/followers/count", h.FollowerCount).Methods("GET")
	router.HandleFunc("/users/{id}/following", h.Following).Methods("GET")
	router.HandleFunc("/users/{id}/following/count", h.FollowingCount).Methods("GET")
}

func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r, DefaultPageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	users, err := h.engine.Followers(userID, limit, offset)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"followers": users})
}

func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r, DefaultPageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	users, err := h.engine.Following(userID, limit, offset)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"following": users})
}

func (h *Handler) FollowerCount(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	count, err := h.engine.FollowerCount(userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) FollowingCount(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, models.ErrInvalidArgument)
		return
	}

	count, err := h.engine.FollowingCount(userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}
