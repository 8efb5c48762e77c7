package handlers

import (
	"net/http"

	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groups store.Groups
}

func NewGroupHandler(groups store.Groups) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// List shows the group directory.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groups.All()
	if err != nil {
		utils.Sugar.Errorf("load groups: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	Render(c, http.StatusOK, "group_list.html", &GroupListPage{
		basePage: basePage{Title: "Groups"},
		Groups:   groups,
	})
}
