package handlers

import (
	"errors"
	"net/http"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/forms"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	dashboardPath = "/dashboard"
	saveFailed    = "Failed to save profile. Please try again."
)

type profileRequest struct {
	forms.Values
	AcknowledgeOverspend bool `json:"acknowledgeOverspend"`
}

type saveRequest struct {
	AcknowledgeOverspend bool `json:"acknowledgeOverspend"`
}

func (a *API) HandleOnboarding(c *gin.Context) {
	s := session(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := forms.Onboard(c.Request.Context(), a.store, s, req.Values, req.AcknowledgeOverspend); err != nil {
		respondFormError(c, s.UserID, err)
		return
	}

	a.editors.Discard(s.UserID)
	logger.Get().Info("profile onboarded", zap.String("user_id", s.UserID))
	c.JSON(http.StatusOK, gin.H{"redirect": dashboardPath})
}

func (a *API) HandleDashboard(c *gin.Context) {
	d := views.LoadDashboard(c.Request.Context(), a.store, session(c).UserID)
	c.JSON(viewStatus(d.State), d)
}

func (a *API) HandleGetProfile(c *gin.Context) {
	_, view := a.editors.Open(c.Request.Context(), a.store, session(c).UserID)
	c.JSON(viewStatus(view.State), view)
}

// HandleEditProfile applies {"field": "value"} edits to the live form.
func (a *API) HandleEditProfile(c *gin.Context) {
	var edits map[forms.Field]string
	if err := c.ShouldBindJSON(&edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	editor, view := a.editors.Open(c.Request.Context(), a.store, session(c).UserID)
	if editor == nil {
		c.JSON(viewStatus(view.State), view)
		return
	}

	if err := editor.SetAll(edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := editor.State()
	view.Form = &state
	c.JSON(http.StatusOK, view)
}

func (a *API) HandleResetProfile(c *gin.Context) {
	editor, view := a.editors.Open(c.Request.Context(), a.store, session(c).UserID)
	if editor == nil {
		c.JSON(viewStatus(view.State), view)
		return
	}

	editor.Reset()
	state := editor.State()
	view.Form = &state
	c.JSON(http.StatusOK, view)
}

func (a *API) HandleSaveProfile(c *gin.Context) {
	userID := session(c).UserID

	var req saveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	editor, view := a.editors.Open(c.Request.Context(), a.store, userID)
	if editor == nil {
		c.JSON(viewStatus(view.State), view)
		return
	}

	if err := editor.Submit(c.Request.Context(), a.store, userID, req.AcknowledgeOverspend); err != nil {
		respondFormError(c, userID, err)
		return
	}

	logger.Get().Info("profile updated", zap.String("user_id", userID))
	state := editor.State()
	view.Form = &state
	c.JSON(http.StatusOK, view)
}

func respondFormError(c *gin.Context, userID string, err error) {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, forms.ErrOverspend):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": forms.OverspendWarning, "warning": true})
	case errors.Is(err, forms.ErrNoChanges):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No changes to save"})
	case errors.Is(err, forms.ErrSaveInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "A save is already in progress"})
	default:
		logger.Get().Error("error saving profile", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": saveFailed})
	}
}
