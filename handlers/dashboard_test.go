package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildMonthlySeriesZeroFill(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	data := BuildMonthlySeries(now, map[string]int{"2026-08": 2}, map[string]int{})

	if len(data.Labels) != 6 || len(data.Posts) != 6 || len(data.Requests) != 6 {
		t.Fatalf("expected 6 entries, got labels=%d posts=%d requests=%d",
			len(data.Labels), len(data.Posts), len(data.Requests))
	}

	wantLabels := []string{"Mar 2026", "Apr 2026", "May 2026", "Jun 2026", "Jul 2026", "Aug 2026"}
	for i, want := range wantLabels {
		if data.Labels[i] != want {
			t.Errorf("label[%d] = %q, want %q", i, data.Labels[i], want)
		}
	}

	wantPosts := []int{0, 0, 0, 0, 0, 2}
	for i, want := range wantPosts {
		if data.Posts[i] != want {
			t.Errorf("posts[%d] = %d, want %d", i, data.Posts[i], want)
		}
		if data.Requests[i] != 0 {
			t.Errorf("requests[%d] = %d, want 0", i, data.Requests[i])
		}
	}
}

func TestBuildMonthlySeriesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	data := BuildMonthlySeries(now,
		map[string]int{"2025-09": 1, "2025-12": 4, "2026-02": 7},
		map[string]int{"2026-01": 3})

	wantLabels := []string{"Sep 2025", "Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026", "Feb 2026"}
	for i, want := range wantLabels {
		if data.Labels[i] != want {
			t.Errorf("label[%d] = %q, want %q", i, data.Labels[i], want)
		}
	}

	wantPosts := []int{1, 0, 0, 4, 0, 7}
	wantRequests := []int{0, 0, 0, 0, 3, 0}
	for i := range wantPosts {
		if data.Posts[i] != wantPosts[i] {
			t.Errorf("posts[%d] = %d, want %d", i, data.Posts[i], wantPosts[i])
		}
		if data.Requests[i] != wantRequests[i] {
			t.Errorf("requests[%d] = %d, want %d", i, data.Requests[i], wantRequests[i])
		}
	}
}

func TestBuildMonthlySeriesIgnoresOutOfWindowKeys(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	data := BuildMonthlySeries(now, map[string]int{"2025-08": 9}, map[string]int{"2027-01": 5})

	for i := range data.Posts {
		if data.Posts[i] != 0 || data.Requests[i] != 0 {
			t.Fatalf("entry %d should be zero, got posts=%d requests=%d", i, data.Posts[i], data.Requests[i])
		}
	}
}

func TestMergeActivityOrdersNewestFirst(t *testing.T) {
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	articles := []ActivityItem{
		{Type: ActivityArticle, ID: primitive.NewObjectID(), Title: "a1", CreatedAt: at(5)},
		{Type: ActivityArticle, ID: primitive.NewObjectID(), Title: "a2", CreatedAt: at(1)},
	}
	posts := []ActivityItem{
		{Type: ActivityPost, ID: primitive.NewObjectID(), Title: "p1", CreatedAt: at(4)},
	}
	requests := []ActivityItem{
		{Type: ActivityRequest, ID: primitive.NewObjectID(), Title: "r1", CreatedAt: at(6)},
		{Type: ActivityRequest, ID: primitive.NewObjectID(), Title: "r2", CreatedAt: at(2)},
	}

	merged := MergeActivity(articles, posts, requests)

	if len(merged) != 5 {
		t.Fatalf("expected 5 items, got %d", len(merged))
	}

	wantOrder := []string{"r1", "a1", "p1", "r2", "a2"}
	for i, want := range wantOrder {
		if merged[i].Title != want {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].Title, want)
		}
	}

	for i := 1; i < len(merged); i++ {
		if merged[i].CreatedAt.After(merged[i-1].CreatedAt) {
			t.Errorf("merged feed not descending at index %d", i)
		}
	}
}

func TestMergeActivityEmpty(t *testing.T) {
	merged := MergeActivity(nil, []ActivityItem{}, nil)
	if len(merged) != 0 {
		t.Fatalf("expected empty merge, got %d items", len(merged))
	}
}
