package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
)

func TestFollowProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")

	rec := env.do(t, http.MethodPost, "/profiles/:id/follow", nil, alice, env.follow.FollowProfile, map[string]string{"id": fmt.Sprint(bob.ID)})
	if rec.Code != http.StatusOK {
		t.Fatalf("follow: got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	following, err := env.interactions.HasInteraction(alice.ID, bob.ID, models.InteractionFollow)
	if err != nil {
		t.Fatalf("has interaction: %v", err)
	}
	if !following {
		t.Fatal("follow edge was not stored")
	}

	// the target gets a follow notification
	count, err := env.notifications.GetUnreadCount(bob.ID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d notifications for target, want 1", count)
	}
}

func TestFollowProfileDuplicate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")
	params := map[string]string{"id": fmt.Sprint(bob.ID)}

	if rec := env.do(t, http.MethodPost, "/profiles/:id/follow", nil, alice, env.follow.FollowProfile, params); rec.Code != http.StatusOK {
		t.Fatalf("first follow: got status %d", rec.Code)
	}
	rec := env.do(t, http.MethodPost, "/profiles/:id/follow", nil, alice, env.follow.FollowProfile, params)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate follow: got status %d, want %d", rec.Code, http.StatusConflict)
	}

	var edges int64
	env.db.Model(&models.ProfileInteraction{}).Where("type = ?", models.InteractionFollow).Count(&edges)
	if edges != 1 {
		t.Fatalf("got %d follow edges, want 1", edges)
	}
}

func TestFollowSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")

	rec := env.do(t, http.MethodPost, "/profiles/:id/follow", nil, alice, env.follow.FollowProfile, map[string]string{"id": fmt.Sprint(alice.ID)})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self follow: got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFollowUnknownProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")

	rec := env.do(t, http.MethodPost, "/profiles/:id/follow", nil, alice, env.follow.FollowProfile, map[string]string{"id": "9999"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("follow missing profile: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFollowBlockedEitherDirection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")
	carol := env.createProfile(t, "carol")

	// alice blocked bob, carol blocked alice
	mustCreateInteraction(t, env, alice.ID, bob.ID, models.InteractionBlock)
	mustCreateInteraction(t, env, carol.ID, alice.ID, models.InteractionBlock)

	rec := env.do(t, http.MethodPost, "/profiles/:id/follow", nil, alice, env.follow.FollowProfile, map[string]string{"id": fmt.Sprint(bob.ID)})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("follow while blocking: got status %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = env.do(t, http.MethodPost, "/profiles/:id/follow", nil, alice, env.follow.FollowProfile, map[string]string{"id": fmt.Sprint(carol.ID)})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("follow while blocked by target: got status %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestUnfollowProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")
	params := map[string]string{"id": fmt.Sprint(bob.ID)}

	mustCreateInteraction(t, env, alice.ID, bob.ID, models.InteractionFollow)

	rec := env.do(t, http.MethodDelete, "/profiles/:id/follow", nil, alice, env.follow.UnfollowProfile, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("unfollow: got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	following, err := env.interactions.HasInteraction(alice.ID, bob.ID, models.InteractionFollow)
	if err != nil {
		t.Fatalf("has interaction: %v", err)
	}
	if following {
		t.Fatal("follow edge still present after unfollow")
	}

	// not following any more, so a second unfollow misses
	rec = env.do(t, http.MethodDelete, "/profiles/:id/follow", nil, alice, env.follow.UnfollowProfile, params)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unfollow absent: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetFollowersPagination(t *testing.T) {
	env := newTestEnv(t)
	target := env.createProfile(t, "target")

	for i := 0; i < 5; i++ {
		p := env.createProfile(t, fmt.Sprintf("fan%d", i))
		mustCreateInteraction(t, env, p.ID, target.ID, models.InteractionFollow)
	}

	params := map[string]string{"id": fmt.Sprint(target.ID)}
	rec := env.do(t, http.MethodGet, "/profiles/:id/followers?limit=3", nil, target, env.follow.GetFollowers, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("followers page 1: got status %d: %s", rec.Code, rec.Body.String())
	}
	page := decodePage(t, rec)
	if page.Count != 3 || len(page.Items) != 3 {
		t.Fatalf("page 1: got %d items, want 3", len(page.Items))
	}
	if !page.HasNextPage {
		t.Fatal("page 1: expected has_next_page")
	}
	if page.NextCursor == 0 {
		t.Fatal("page 1: expected a next_cursor")
	}

	url := fmt.Sprintf("/profiles/:id/followers?limit=3&cursor=%d", page.NextCursor)
	rec = env.do(t, http.MethodGet, url, nil, target, env.follow.GetFollowers, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("followers page 2: got status %d", rec.Code)
	}
	page = decodePage(t, rec)
	if page.Count != 2 || len(page.Items) != 2 {
		t.Fatalf("page 2: got %d items, want 2", len(page.Items))
	}
	if page.HasNextPage {
		t.Fatal("page 2: unexpected has_next_page")
	}
	if page.NextCursor != 0 {
		t.Fatalf("page 2: unexpected next_cursor %d", page.NextCursor)
	}
}

func mustCreateInteraction(t *testing.T, env *testEnv, sourceID, targetID uint, interactionType models.ProfileInteractionType) {
	t.Helper()
	err := env.interactions.CreateInteraction(&models.ProfileInteraction{
		SourceProfileID: sourceID,
		TargetProfileID: targetID,
		Type:            interactionType,
	})
	if err != nil {
		t.Fatalf("create %s interaction: %v", interactionType, err)
	}
}
