package handler

import (
	"net/http"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizerStrict = bluemonday.StrictPolicy()
	sanitizerUGC    = bluemonday.UGCPolicy()
)

type postHTMLResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// GetPostHTML renders a post's markdown content as sanitized HTML.
func (h *Handler) GetPostHTML(c echo.Context) error {
	p, err := h.findPost(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postHTMLResponse{
		ID:    p.ID,
		Title: sanitizerStrict.Sanitize(p.Title),
		HTML:  safeMarkdown(p.Content),
	})
}

func mdToHTML(md string) []byte {
	// a parser must not be reused across documents
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return markdown.Render(doc, renderer)
}

func safeMarkdown(content string) string {
	return string(sanitizerUGC.SanitizeBytes(mdToHTML(content)))
}
