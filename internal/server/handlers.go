package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Login form input names.
const (
	RollNumberFieldName = "rollNumber"
	NameFieldName       = "name"
)

const messageSubmitFailed = "Submission failed. Please try again."

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		s.renderView(c, http.StatusOK, render.View{Status: wizard.StatusIdle}, "", "")
		return
	}

	state := session.Controller.Snapshot()
	switch state.Status {
	case wizard.StatusLoading, wizard.StatusReady:
		c.Redirect(http.StatusSeeOther, "/form")
		return
	}
	view := render.View{Status: wizard.StatusIdle, RollNumber: state.RollNumber}
	s.renderView(c, http.StatusOK, view, session.CSRF, session.TakeFlash())
}

func (s *Server) handleLogin(c *gin.Context) {
	rollNumber := strings.TrimSpace(c.PostForm(RollNumberFieldName))
	name := strings.TrimSpace(c.PostForm(NameFieldName))
	loginView := render.View{Status: wizard.StatusIdle, RollNumber: rollNumber}

	if rollNumber == "" {
		s.renderView(c, http.StatusBadRequest, loginView, "", MessageRollRequired)
		return
	}

	ctx := c.Request.Context()
	if err := s.auth.Login(ctx, rollNumber, name); err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, client.ErrRollNumberRequired) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("login rejected", zap.String("roll_number", rollNumber), zap.Error(err))
		s.renderView(c, status, loginView, "", MessageLoginFailed)
		return
	}

	session, err := s.sessionOrCreate(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	session.SetName(name)

	if err := session.Controller.Load(ctx, rollNumber); err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("student logged in", zap.String("roll_number", rollNumber))

	if s.config.LoadWait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, s.config.LoadWait)
		// The outcome is rendered by GET /form either way.
		_ = session.Controller.Wait(waitCtx)
		cancel()
	}
	c.Redirect(http.StatusSeeOther, "/form")
}

func (s *Server) handleLogout(c *gin.Context) {
	if session, ok := s.session(c); ok {
		s.sessions.Delete(session.ID)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.config.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleForm(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	state := session.Controller.Snapshot()
	if state.Status == wizard.StatusIdle {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	s.renderState(c, http.StatusOK, session, state)
}

func (s *Server) handleFormAction(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if c.PostForm(render.CSRFFieldName) != session.CSRF {
		c.String(http.StatusForbidden, "invalid form token")
		return
	}

	state := session.Controller.Snapshot()
	if state.Status != wizard.StatusReady {
		c.Redirect(http.StatusSeeOther, "/form")
		return
	}
	if c.PostForm(render.SectionFieldName) != strconv.Itoa(state.Index) {
		session.SetFlash(MessageStaleSubmission)
		c.Redirect(http.StatusSeeOther, "/form")
		return
	}

	action := c.PostForm(render.ActionFieldName)
	section, _ := state.CurrentSection()
	if err := session.Controller.ApplyValues(valuesFromForm(c, section)); err != nil {
		s.logger.Warn("rejected posted values", zap.String("roll_number", state.RollNumber), zap.Error(err))
		if action != render.ActionPrev {
			s.renderState(c, http.StatusUnprocessableEntity, session, session.Controller.Snapshot())
			return
		}
	}

	var (
		passed = true
		err    error
	)
	switch action {
	case render.ActionPrev:
		err = session.Controller.Prev()
	case render.ActionSubmit:
		passed, err = session.Controller.Submit(c.Request.Context())
	default:
		passed, err = session.Controller.Next()
	}

	switch {
	case isNavigationError(err):
		s.renderState(c, http.StatusBadRequest, session, session.Controller.Snapshot())
	case err != nil:
		s.logger.Error("form action failed", zap.String("roll_number", state.RollNumber), zap.Error(err))
		session.SetFlash(messageSubmitFailed)
		s.renderState(c, http.StatusBadGateway, session, session.Controller.Snapshot())
	case !passed:
		s.renderState(c, http.StatusUnprocessableEntity, session, session.Controller.Snapshot())
	default:
		c.Redirect(http.StatusSeeOther, "/form")
	}
}

func (s *Server) handleState(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	data, err := json.Marshal(session.Controller.Snapshot())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// valuesFromForm reads the posted value of every field in section. Checkbox
// groups post one entry per ticked option; absent groups read as empty sets.
func valuesFromForm(c *gin.Context, section schema.Section) schema.FormValues {
	values := make(schema.FormValues, len(section.Fields))
	for _, field := range section.Fields {
		if field.Type.MultiValue() {
			values[field.ID] = schema.Set(c.PostFormArray(field.ID)...)
			continue
		}
		values[field.ID] = schema.Text(c.PostForm(field.ID))
	}
	return values
}

func isNavigationError(err error) bool {
	return errors.Is(err, wizard.ErrNoNext) ||
		errors.Is(err, wizard.ErrNoPrev) ||
		errors.Is(err, wizard.ErrNotLastSection) ||
		errors.Is(err, wizard.ErrNotReady)
}

func (s *Server) session(c *gin.Context) (*Session, bool) {
	id, err := c.Cookie(s.config.CookieName)
	if err != nil {
		return nil, false
	}
	return s.sessions.Get(id)
}

func (s *Server) sessionOrCreate(c *gin.Context) (*Session, error) {
	if session, ok := s.session(c); ok {
		return session, nil
	}
	session, err := s.sessions.Create()
	if err != nil {
		return nil, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.config.CookieName, session.ID, 0, "/", "", false, true)
	return session, nil
}

func (s *Server) renderState(c *gin.Context, status int, session *Session, state wizard.State) {
	s.renderView(c, status, render.ViewFromState(state), session.CSRF, session.TakeFlash())
}

func (s *Server) renderView(c *gin.Context, status int, view render.View, csrf, flash string) {
	options := render.RenderOptions{
		Flash: flash,
		Theme: s.theme,
	}
	if csrf != "" {
		options.Hidden = []render.HiddenField{render.CSRFToken(csrf)}
	}

	out, err := s.renderer.Render(c.Request.Context(), view, options)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(status, s.renderer.ContentType(), out)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusInternalServerError, "internal error")
}
