package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/middleware"
	"github.com/cybermarket/server/internal/profile"
)

type UpdateProfileRequest struct {
	Avatar         string `json:"avatar" validate:"required,avatar"`
	Bio            string `json:"bio" validate:"max=200"`
	AvatarImageURL string `json:"avatar_image_url" validate:"omitempty,max=500"`
}

type AddXPRequest struct {
	Amount int `json:"amount" validate:"min=0,max=100000"`
}

type UnlockAchievementRequest struct {
	AchievementID string `json:"achievement_id" validate:"required,max=100"`
}

type AchievementView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
	Unlocked    bool   `json:"unlocked"`
}

type AchievementsResponse struct {
	Achievements []AchievementView `json:"achievements"`
}

type EvaluateResponse struct {
	Unlocked []string `json:"unlocked"`
}

// HandleGetProfile returns the full user record for the profile screen
// @Summary Get profile
// @Tags profile
// @Produce json
// @Success 200 {object} domain.UserRecord
// @Router /profile [get]
func HandleGetProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		record, err := svc.Get(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get profile", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, record)
	}
}

// HandleUpdateProfile replaces avatar, bio and avatar image
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Router /profile [put]
func HandleUpdateProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode profile update request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid profile update request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		p, err := svc.UpdateProfile(r.Context(), userID, req.Avatar, req.Bio, req.AvatarImageURL)
		if err != nil {
			log.Warn("Failed to update profile", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		log.Info("Profile updated", "user_id", userID, "avatar", req.Avatar)

		respondJSON(w, http.StatusOK, p)
	}
}

// HandleAddXP awards experience points
// @Summary Add experience
// @Tags profile
// @Accept json
// @Produce json
// @Param request body AddXPRequest true "XP amount"
// @Success 200 {object} profile.XPResult
// @Failure 400 {object} ErrorResponse
// @Router /profile/xp [post]
func HandleAddXP(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req AddXPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add xp request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid add xp request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.AddXP(r.Context(), userID, req.Amount)
		if err != nil {
			log.Warn("Failed to add xp", "error", err, "user_id", userID, "amount", req.Amount)
			respondServiceError(w, err)
			return
		}

		if result.LeveledUp {
			log.Info("Level up", "user_id", userID, "level", result.Level)
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleListAchievements returns all badges with per-user unlock status
// @Summary List achievements
// @Tags profile
// @Produce json
// @Success 200 {object} AchievementsResponse
// @Router /profile/achievements [get]
func HandleListAchievements(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		record, err := svc.Get(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get profile for achievements", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		views := make([]AchievementView, 0, len(profile.Achievements))
		for _, a := range profile.Achievements {
			views = append(views, AchievementView{
				ID:          a.ID,
				Name:        a.Name,
				Description: a.Description,
				Icon:        a.Icon,
				Rarity:      string(a.Rarity),
				Unlocked:    record.Profile.HasAchievement(a.ID),
			})
		}

		respondJSON(w, http.StatusOK, AchievementsResponse{Achievements: views})
	}
}

// HandleUnlockAchievement unlocks one badge by ID
// @Summary Unlock achievement
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UnlockAchievementRequest true "Achievement ID"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Router /profile/achievements/unlock [post]
func HandleUnlockAchievement(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req UnlockAchievementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode unlock request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid unlock request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		p, err := svc.UnlockAchievement(r.Context(), userID, req.AchievementID)
		if err != nil {
			log.Warn("Failed to unlock achievement", "error", err, "user_id", userID, "achievement", req.AchievementID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}

// HandleEvaluateAchievements unlocks every badge the record now satisfies
// @Summary Evaluate achievements
// @Tags profile
// @Produce json
// @Success 200 {object} EvaluateResponse
// @Router /profile/achievements/evaluate [post]
func HandleEvaluateAchievements(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		unlocked, err := svc.EvaluateAchievements(r.Context(), userID)
		if err != nil {
			log.Error("Failed to evaluate achievements", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		if len(unlocked) > 0 {
			log.Info("Achievements unlocked", "user_id", userID, "achievements", unlocked)
		}

		respondJSON(w, http.StatusOK, EvaluateResponse{Unlocked: unlocked})
	}
}
