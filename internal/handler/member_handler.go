package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/service"
	"redirectflow-go/response"
)

func CreateMemberHandler(c *gin.Context) {
	var req dto.CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := service.CreateMember(req)
	if err != nil {
		zap.L().Warn("Member creation failed",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(member, "Member created"))
}

func ListMembersHandler(c *gin.Context) {
	members, err := service.ListMembers()
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(members, "success"))
}

func UpdateMemberHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := service.UpdateMember(id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(member, "Member updated"))
}

// DeleteMemberHandler removes a member; members still holding live tasks
// are refused.
func DeleteMemberHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := service.DeleteMember(id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK("", "Member deleted"))
}
