package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
	"github.com/ArthurDelaporte/Yatube-Back/internal/group"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
)

const (
	dateLayout  = "2006-01-02"
	maxChartDay = 366
)

// dateRange reads start_date and end_date, defaulting to the last 30 days.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid start_date")
		}
		startDate = parsed
	}
	if s := c.Query("end_date"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid end_date")
		}
		endDate = parsed
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, errors.New("end_date is before start_date")
	}
	return startDate, endDate, nil
}

// dbError answers 500 and logs the failed query.
func dbError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	logs.LogJSON("ERROR", message, map[string]interface{}{
		"error":  err.Error(),
		"route":  c.FullPath(),
		"userID": c.GetUint("user_id"),
	})
}

// GetDashboardStats GET /admin/api/stats
func GetDashboardStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	startDate, endDate, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var totalUsers, totalPosts, totalGroups, totalComments, totalFollows int64
	var postsInRange, postsWithoutGroup int64

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{database.DB.Table("users"), &totalUsers},
		{database.DB.Table("posts"), &totalPosts},
		{database.DB.Table("groups"), &totalGroups},
		{database.DB.Table("comments"), &totalComments},
		{database.DB.Table("follows"), &totalFollows},
		{database.DB.Table("posts").Where("created_at >= ? AND created_at < ?", startDate, endDate.AddDate(0, 0, 1)), &postsInRange},
		{database.DB.Table("posts").Where("group_id IS NULL"), &postsWithoutGroup},
	}
	for _, count := range counts {
		if err := count.query.Count(count.dest).Error; err != nil {
			dbError(c, "could not load stats", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": gin.H{
		"total_users":         totalUsers,
		"total_posts":         totalPosts,
		"total_groups":        totalGroups,
		"total_comments":      totalComments,
		"total_follows":       totalFollows,
		"posts_in_range":      postsInRange,
		"posts_without_group": postsWithoutGroup,
		"date_range": gin.H{
			"start": startDate.Format(dateLayout),
			"end":   endDate.Format(dateLayout),
		},
	}})
	logs.LogJSON("INFO", "Admin stats retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// GetChartData GET /admin/api/charts/:type
func GetChartData(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")
	chartType := c.Param("type")

	startDate, endDate, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch chartType {
	case "evolution":
		if endDate.Sub(startDate) > maxChartDay*24*time.Hour {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date range is limited to one year"})
			return
		}
		data, err := getEvolutionData(startDate, endDate)
		if err != nil {
			dbError(c, "could not load chart data", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": data})
	case "distribution":
		data, err := getDistributionData()
		if err != nil {
			dbError(c, "could not load chart data", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": data})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported chart type"})
		return
	}

	logs.LogJSON("INFO", "Chart data retrieved successfully", map[string]interface{}{
		"route":     route,
		"userID":    userID,
		"chartType": chartType,
		"startDate": startDate.Format(dateLayout),
		"endDate":   endDate.Format(dateLayout),
	})
}

// getEvolutionData counts new users, posts and comments per day, both ends
// included.
func getEvolutionData(startDate, endDate time.Time) ([]gin.H, error) {
	results := []gin.H{}

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dayEnd := d.AddDate(0, 0, 1)

		var usersCount, postsCount, commentsCount int64
		for _, count := range []struct {
			table string
			dest  *int64
		}{
			{"users", &usersCount},
			{"posts", &postsCount},
			{"comments", &commentsCount},
		} {
			err := database.DB.Table(count.table).
				Where("created_at >= ? AND created_at < ?", d, dayEnd).
				Count(count.dest).Error
			if err != nil {
				return nil, err
			}
		}

		results = append(results, gin.H{
			"date":     d.Format(dateLayout),
			"users":    usersCount,
			"posts":    postsCount,
			"comments": commentsCount,
		})
	}

	return results, nil
}

// getDistributionData splits posts by group, with ungrouped posts last.
func getDistributionData() ([]gin.H, error) {
	var rows []struct {
		Title     string
		PostCount int64
	}
	err := database.DB.Table("groups").
		Select("groups.title AS title, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.group_id = groups.id").
		Group("groups.id, groups.title").
		Order("post_count DESC, groups.title").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var ungrouped int64
	if err := database.DB.Table("posts").Where("group_id IS NULL").Count(&ungrouped).Error; err != nil {
		return nil, err
	}

	data := make([]gin.H, 0, len(rows)+1)
	for _, row := range rows {
		data = append(data, gin.H{"name": row.Title, "value": row.PostCount})
	}
	return append(data, gin.H{"name": "No group", "value": ungrouped}), nil
}

// GetTopAuthors GET /admin/api/top-authors
func GetTopAuthors(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var topByPosts []struct {
		AuthorID  uint   `json:"author_id"`
		Username  string `json:"username"`
		PostCount int64  `json:"post_count"`
	}
	err := database.DB.Table("posts").
		Select("posts.author_id, users.username, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN users ON posts.author_id = users.id").
		Group("posts.author_id, users.username").
		Order("post_count DESC").
		Limit(limit).
		Scan(&topByPosts).Error
	if err != nil {
		dbError(c, "could not load top authors", err)
		return
	}

	var topByFollowers []struct {
		AuthorID      uint   `json:"author_id"`
		Username      string `json:"username"`
		FollowerCount int64  `json:"follower_count"`
	}
	err = database.DB.Table("follows").
		Select("follows.author_id, users.username, COUNT(follows.id) AS follower_count").
		Joins("LEFT JOIN users ON follows.author_id = users.id").
		Group("follows.author_id, users.username").
		Order("follower_count DESC").
		Limit(limit).
		Scan(&topByFollowers).Error
	if err != nil {
		dbError(c, "could not load top authors", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top_by_posts":     topByPosts,
		"top_by_followers": topByFollowers,
	})

	logs.LogJSON("INFO", "Top authors retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"limit":  limit,
	})
}

// CreateGroup POST /admin/api/groups
func CreateGroup(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	var input struct {
		Title       string `json:"title" binding:"required,max=200"`
		Slug        string `json:"slug" binding:"required,max=100"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group", "details": err.Error()})
		return
	}
	if !group.ValidSlug(input.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug may contain only letters, numbers, underscores and hyphens"})
		return
	}
	if _, err := group.GetBySlug(input.Slug); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "slug already used"})
		return
	} else if !errors.Is(err, group.ErrNotFound) {
		dbError(c, "could not load group", err)
		return
	}

	g := group.Group{Title: input.Title, Slug: input.Slug, Description: input.Description}
	if err := group.Create(&g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create group"})
		logs.LogJSON("ERROR", "Error creating group", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"group": g})
	logs.LogJSON("INFO", "Group created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"slug":   g.Slug,
	})
}

// DeleteGroup DELETE /admin/api/groups/:slug
// Posts of the group stay published without a group.
func DeleteGroup(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	g, err := group.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, group.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		dbError(c, "could not load group", err)
		return
	}

	if err := group.Delete(g.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete group"})
		logs.LogJSON("ERROR", "Error deleting group", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "group deleted"})
	logs.LogJSON("INFO", "Group deleted", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"slug":   g.Slug,
	})
}
