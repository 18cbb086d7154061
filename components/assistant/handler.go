package assistant

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/section"
	"github.com/goliatone/go-reportgen/pkg/session"
)

type addInstanceRequest struct {
	DefinitionID string `json:"definitionId" binding:"required"`
}

type answerRequest struct {
	Value model.AnswerValue `json:"value"`
}

type toggleRequest struct {
	Option string `json:"option" binding:"required"`
}

type textRequest struct {
	Text string `json:"text"`
}

type timeRequest struct {
	Value string `json:"value"`
}

// CatalogResponse is the body of GET /catalog.
type CatalogResponse struct {
	Definitions []model.FieldSetDefinition `json:"definitions"`
	Quarantined []catalog.Rejection        `json:"quarantined"`
}

func (c *Component) getContract(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/yaml", contractYAML)
}

func (c *Component) listCatalog(ctx *gin.Context) {
	defs, err := c.reader.List(ctx.Request.Context())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	quarantined := c.opts.Rejections
	if quarantined == nil {
		quarantined = []catalog.Rejection{}
	}
	ctx.JSON(http.StatusOK, CatalogResponse{Definitions: defs, Quarantined: quarantined})
}

func (c *Component) createSession(ctx *gin.Context) {
	view, err := c.sessions.Create(ctx.Request.Context())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, view)
}

func (c *Component) getSession(ctx *gin.Context) {
	view, err := c.sessions.View(ctx.Param("id"))
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (c *Component) deleteSession(ctx *gin.Context) {
	if !c.sessions.Delete(ctx.Param("id")) {
		respondDomainError(ctx, session.ErrSessionNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Component) getPage(ctx *gin.Context) {
	view, err := c.sessions.View(ctx.Param("id"))
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	html, err := c.engine.Session(view, c.opts.PageTitle)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (c *Component) getReport(ctx *gin.Context) {
	view, err := c.sessions.View(ctx.Param("id"))
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, "%s", view.Report.Text)
}

func (c *Component) editReport(ctx *gin.Context) {
	var req textRequest
	if !bind(ctx, &req) {
		return
	}
	c.mutate(ctx, http.StatusOK, func(s *session.Session) (Mutation, error) {
		s.EditReport(req.Text)
		return Mutation{Applied: true}, nil
	})
}

func (c *Component) addInstance(ctx *gin.Context) {
	var req addInstanceRequest
	if !bind(ctx, &req) {
		return
	}
	c.mutate(ctx, http.StatusCreated, func(s *session.Session) (Mutation, error) {
		key, err := s.AddInstance(ctx.Request.Context(), req.DefinitionID)
		return Mutation{Applied: err == nil, Key: key}, err
	})
}

func (c *Component) removeInstance(ctx *gin.Context) {
	key := ctx.Param("key")
	c.mutate(ctx, http.StatusOK, func(s *session.Session) (Mutation, error) {
		return Mutation{Applied: s.RemoveInstance(key), Key: key}, nil
	})
}

func (c *Component) setAnswer(ctx *gin.Context) {
	var req answerRequest
	if !bind(ctx, &req) {
		return
	}
	c.apply(ctx, section.AnswerChanged{Key: ctx.Param("field"), Value: req.Value})
}

func (c *Component) toggleOption(ctx *gin.Context) {
	var req toggleRequest
	if !bind(ctx, &req) {
		return
	}
	c.apply(ctx, section.OptionToggled{Key: ctx.Param("field"), Option: req.Option})
}

func (c *Component) editSection(ctx *gin.Context) {
	var req textRequest
	if !bind(ctx, &req) {
		return
	}
	c.apply(ctx, section.UserEdited{Text: req.Text})
}

func (c *Component) resetSection(ctx *gin.Context) {
	c.apply(ctx, section.Reset{})
}

func (c *Component) setTime(ctx *gin.Context) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var req timeRequest
	if !bind(ctx, &req) {
		return
	}
	c.mutate(ctx, http.StatusOK, func(s *session.Session) (Mutation, error) {
		err := s.SetTime(slot, req.Value)
		return Mutation{Applied: err == nil}, err
	})
}

func (c *Component) stampTime(ctx *gin.Context) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	c.mutate(ctx, http.StatusOK, func(s *session.Session) (Mutation, error) {
		_, err := s.StampTime(slot)
		return Mutation{Applied: err == nil}, err
	})
}

func (c *Component) apply(ctx *gin.Context, ev section.Event) {
	target := ctx.Param("target")
	c.mutate(ctx, http.StatusOK, func(s *session.Session) (Mutation, error) {
		applied, err := s.Apply(target, ev)
		return Mutation{Applied: applied, Key: target}, err
	})
}

// mutate runs fn under the session lock and answers with the refreshed view.
func (c *Component) mutate(ctx *gin.Context, status int, fn func(*session.Session) (Mutation, error)) {
	var out Mutation
	err := c.sessions.Do(ctx.Param("id"), func(s *session.Session) error {
		m, err := fn(s)
		if err != nil {
			return err
		}
		out = m
		out.Session = s.View()
		return nil
	})
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(status, out)
}

func bind(ctx *gin.Context, dst any) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid_body", err)
		return false
	}
	return true
}

func slotParam(ctx *gin.Context) (int, bool) {
	slot, err := strconv.Atoi(ctx.Param("slot"))
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid_slot", err)
		return 0, false
	}
	return slot, true
}
