package colleges

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the service over plain JSON GET endpoints. Upstream error
// detail stays in the logs; responses carry only generic failure envelopes.
type Handler struct {
	svc Service
}

func NewHandler(svc Service) Handler {
	return Handler{svc: svc}
}

func (h Handler) Register(r gin.IRouter) {
	r.GET("/colleges/list-all", h.ListAll)
	r.GET("/colleges/with-params", h.Search)
	r.GET("/college/info/:id", h.Info)
	r.GET("/colleges/how-reviewed", h.HowReviewed)
	r.GET("/colleges/ask", h.Ask)
}

// GET /colleges/list-all
func (h Handler) ListAll(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.svc.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list colleges", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"colleges": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": records})
}

// GET /colleges/with-params?name=&max_distance=&starting_point=
func (h Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.svc.Search(ctx, SearchQuery{
		Name:          c.Query("name"),
		MaxDistance:   c.Query("max_distance"),
		StartingPoint: c.Query("starting_point"),
	})
	if errors.Is(err, ErrBadInput) {
		c.JSON(http.StatusBadRequest, gin.H{"colleges": nil})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to search colleges", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"colleges": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": records})
}

// GET /college/info/:id?name=
func (h Handler) Info(c *gin.Context) {
	ctx := c.Request.Context()

	info, err := h.svc.Info(ctx, c.Param("id"), c.Query("name"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to assemble college info", "id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"college": nil,
			"msg":     "unable to retrieve college info",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"college": info, "msg": nil})
}

// GET /colleges/how-reviewed?name=
func (h Handler) HowReviewed(c *gin.Context) {
	ctx := c.Request.Context()

	text, err := h.svc.HowReviewed(ctx, c.Query("name"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch review method", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"how_reviewed": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"how_reviewed": text})
}

// GET /colleges/ask?question=
func (h Handler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	answer, err := h.svc.Ask(ctx, c.Query("question"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to answer question", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"answer": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
