package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"ecocropshare/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	activityLimit  = 3
	trailingMonths = 6
)

// Activity types tagged onto the merged recent-activity feed.
const (
	ActivityArticle = "article"
	ActivityPost    = "post"
	ActivityRequest = "request"
)

type ActivityItem struct {
	Type      string             `json:"type"`
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	UserName  string             `json:"userName"`
	CreatedAt time.Time          `json:"createdAt"`
}

type MonthlyData struct {
	Labels   []string `json:"labels"`
	Posts    []int    `json:"posts"`
	Requests []int    `json:"requests"`
}

type DashboardResponse struct {
	Users          int64          `json:"users"`
	Articles       int64          `json:"articles"`
	Posts          int64          `json:"posts"`
	Requests       int64          `json:"requests"`
	History        int64          `json:"history"`
	RecentActivity []ActivityItem `json:"recentActivity"`
	MonthlyData    MonthlyData    `json:"monthlyData"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	resp := DashboardResponse{}

	counts := []struct {
		coll *mongo.Collection
		dest *int64
	}{
		{h.db.Users, &resp.Users},
		{h.db.Articles, &resp.Articles},
		{h.db.Posts, &resp.Posts},
		{h.db.Requests, &resp.Requests},
		{h.db.History, &resp.History},
	}
	for _, cnt := range counts {
		n, err := cnt.coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			h.internalError(c, "Error loading dashboard", err)
			return
		}
		*cnt.dest = n
	}

	recentArticles, err := h.recentActivity(ctx, h.db.Articles, ActivityArticle, "title")
	if err != nil {
		h.internalError(c, "Error loading dashboard", err)
		return
	}
	recentPosts, err := h.recentActivity(ctx, h.db.Posts, ActivityPost, "title")
	if err != nil {
		h.internalError(c, "Error loading dashboard", err)
		return
	}
	recentRequests, err := h.recentActivity(ctx, h.db.Requests, ActivityRequest, "plantName")
	if err != nil {
		h.internalError(c, "Error loading dashboard", err)
		return
	}
	resp.RecentActivity = MergeActivity(recentArticles, recentPosts, recentRequests)

	now := time.Now()
	postCounts, err := h.monthlyCounts(ctx, h.db.Posts, now)
	if err != nil {
		h.internalError(c, "Error loading dashboard", err)
		return
	}
	requestCounts, err := h.monthlyCounts(ctx, h.db.Requests, now)
	if err != nil {
		h.internalError(c, "Error loading dashboard", err)
		return
	}
	resp.MonthlyData = BuildMonthlySeries(now, postCounts, requestCounts)

	c.JSON(http.StatusOK, resp)
}

// recentActivity pulls the newest documents from one collection, tagging
// them with their source type and resolving the owner's name.
func (h *Handler) recentActivity(ctx context.Context, coll *mongo.Collection, typ, titleField string) ([]ActivityItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$limit", Value: activityLimit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.UsersCollection},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(rows))
	for _, row := range rows {
		item := ActivityItem{Type: typ}
		if id, ok := row["_id"].(primitive.ObjectID); ok {
			item.ID = id
		}
		if title, ok := row[titleField].(string); ok {
			item.Title = title
		}
		if createdAt, ok := row["createdAt"].(primitive.DateTime); ok {
			item.CreatedAt = createdAt.Time()
		}
		item.UserName = "Unknown User"
		if user, ok := row["user"].(bson.M); ok {
			if name, ok := user["name"].(string); ok && name != "" {
				item.UserName = name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// MergeActivity interleaves per-resource feeds into one list, newest first.
func MergeActivity(lists ...[]ActivityItem) []ActivityItem {
	merged := []ActivityItem{}
	for _, list := range lists {
		merged = append(merged, list...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// monthlyCounts groups a collection's documents created in the trailing
// six months by year-month key.
func (h *Handler) monthlyCounts(ctx context.Context, coll *mongo.Collection, now time.Time) (map[string]int, error) {
	since := time.Date(now.Year(), now.Month()-trailingMonths+1, 1, 0, 0, 0, 0, now.Location())

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// BuildMonthlySeries lays grouped counts onto the trailing six calendar
// months, oldest first, zero-filling months with no activity.
func BuildMonthlySeries(now time.Time, postCounts, requestCounts map[string]int) MonthlyData {
	data := MonthlyData{
		Labels:   make([]string, 0, trailingMonths),
		Posts:    make([]int, 0, trailingMonths),
		Requests: make([]int, 0, trailingMonths),
	}

	for i := trailingMonths - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		key := month.Format("2006-01")
		data.Labels = append(data.Labels, month.Format("Jan 2006"))
		data.Posts = append(data.Posts, postCounts[key])
		data.Requests = append(data.Requests, requestCounts[key])
	}
	return data
}
