package handlers

import (
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render fills the shared page fields (viewer, current path) and hands
// the view model to the template engine.
func Render(c *gin.Context, code int, name string, vm viewModel) {
	viewer, _ := middleware.Viewer(c)
	vm.bind(viewer, c.Request.URL.Path)
	c.HTML(code, name, vm)
}

// RenderError shows the generic error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", &ErrorPage{
		basePage: basePage{Title: "Error"},
		Message:  message,
	})
}
