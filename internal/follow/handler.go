package follow

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/core"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

// ProfileFollow GET /follow/:username/
func ProfileFollow(c *gin.Context) {
	route := c.FullPath()
	username := c.Param("username")
	userID := c.GetUint("user_id")

	author, err := user.GetByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			core.NotFound(c)
			return
		}
		core.ServerError(c, err)
		return
	}

	if err := Subscribe(userID, author.ID); err != nil {
		logs.LogJSON("ERROR", "Error adding follow", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"userID":   userID,
			"authorID": author.ID,
		})
		core.ServerError(c, err)
		return
	}

	logs.LogJSON("INFO", "Followed user", map[string]interface{}{
		"route":    route,
		"userID":   userID,
		"authorID": author.ID,
	})
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow GET /unfollow/:username/
func ProfileUnfollow(c *gin.Context) {
	route := c.FullPath()
	username := c.Param("username")
	userID := c.GetUint("user_id")

	author, err := user.GetByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			core.NotFound(c)
			return
		}
		core.ServerError(c, err)
		return
	}

	if err := Unsubscribe(userID, author.ID); err != nil {
		logs.LogJSON("ERROR", "Error unfollow", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"userID":   userID,
			"authorID": author.ID,
		})
		core.ServerError(c, err)
		return
	}

	logs.LogJSON("INFO", "User unfollow", map[string]interface{}{
		"route":    route,
		"userID":   userID,
		"authorID": author.ID,
	})
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
