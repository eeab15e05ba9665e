package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
)

func TestBlockRemovesFollowsBothDirections(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")

	mustCreateInteraction(t, env, alice.ID, bob.ID, models.InteractionFollow)
	mustCreateInteraction(t, env, bob.ID, alice.ID, models.InteractionFollow)
	mustCreateInteraction(t, env, alice.ID, bob.ID, models.InteractionMute)

	rec := env.do(t, http.MethodPost, "/profiles/:id/block", nil, alice, env.block.BlockProfile, map[string]string{"id": fmt.Sprint(bob.ID)})
	if rec.Code != http.StatusOK {
		t.Fatalf("block: got status %d: %s", rec.Code, rec.Body.String())
	}

	checks := []struct {
		name     string
		source   uint
		target   uint
		itype    models.ProfileInteractionType
		expected bool
	}{
		{"alice follows bob", alice.ID, bob.ID, models.InteractionFollow, false},
		{"bob follows alice", bob.ID, alice.ID, models.InteractionFollow, false},
		{"alice mutes bob", alice.ID, bob.ID, models.InteractionMute, true},
		{"alice blocks bob", alice.ID, bob.ID, models.InteractionBlock, true},
	}
	for _, check := range checks {
		has, err := env.interactions.HasInteraction(check.source, check.target, check.itype)
		if err != nil {
			t.Fatalf("%s: %v", check.name, err)
		}
		if has != check.expected {
			t.Errorf("%s: got %v, want %v", check.name, has, check.expected)
		}
	}

	// blocking never notifies the target
	count, err := env.notifications.GetUnreadCount(bob.ID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 0 {
		t.Fatalf("got %d notifications after block, want 0", count)
	}
}

func TestBlockDuplicate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")
	params := map[string]string{"id": fmt.Sprint(bob.ID)}

	if rec := env.do(t, http.MethodPost, "/profiles/:id/block", nil, alice, env.block.BlockProfile, params); rec.Code != http.StatusOK {
		t.Fatalf("first block: got status %d", rec.Code)
	}
	rec := env.do(t, http.MethodPost, "/profiles/:id/block", nil, alice, env.block.BlockProfile, params)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate block: got status %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestBlockHidesFromFollowerListings(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")
	carol := env.createProfile(t, "carol")

	mustCreateInteraction(t, env, alice.ID, bob.ID, models.InteractionFollow)
	mustCreateInteraction(t, env, alice.ID, carol.ID, models.InteractionFollow)
	mustCreateInteraction(t, env, carol.ID, bob.ID, models.InteractionFollow)

	rec := env.do(t, http.MethodPost, "/profiles/:id/block", nil, bob, env.block.BlockProfile, map[string]string{"id": fmt.Sprint(alice.ID)})
	if rec.Code != http.StatusOK {
		t.Fatalf("block: got status %d: %s", rec.Code, rec.Body.String())
	}

	// bob's followers no longer include alice, carol remains
	followers, err := env.interactions.ListByTarget(bob.ID, models.InteractionFollow, 0, 10)
	if err != nil {
		t.Fatalf("list followers: %v", err)
	}
	if len(followers) != 1 || followers[0].ProfileID != carol.ID {
		t.Fatalf("followers of bob: got %+v, want only carol", followers)
	}

	// alice's untouched follow of carol survives
	following, err := env.interactions.ListBySource(alice.ID, models.InteractionFollow, 0, 10)
	if err != nil {
		t.Fatalf("list following: %v", err)
	}
	if len(following) != 1 || following[0].ProfileID != carol.ID {
		t.Fatalf("following of alice: got %+v, want only carol", following)
	}
}

func TestUnblockAbsent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")

	rec := env.do(t, http.MethodDelete, "/profiles/:id/block", nil, alice, env.block.UnblockProfile, map[string]string{"id": fmt.Sprint(bob.ID)})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unblock absent: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestMuteAndUnmute(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")
	params := map[string]string{"id": fmt.Sprint(bob.ID)}

	if rec := env.do(t, http.MethodPost, "/profiles/:id/mute", nil, alice, env.mute.MuteProfile, params); rec.Code != http.StatusOK {
		t.Fatalf("mute: got status %d: %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, http.MethodPost, "/profiles/:id/mute", nil, alice, env.mute.MuteProfile, params); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate mute: got status %d, want %d", rec.Code, http.StatusConflict)
	}
	if rec := env.do(t, http.MethodDelete, "/profiles/:id/mute", nil, alice, env.mute.UnmuteProfile, params); rec.Code != http.StatusOK {
		t.Fatalf("unmute: got status %d", rec.Code)
	}
	// unmuting an unmuted profile conflicts rather than 404s
	if rec := env.do(t, http.MethodDelete, "/profiles/:id/mute", nil, alice, env.mute.UnmuteProfile, params); rec.Code != http.StatusConflict {
		t.Fatalf("unmute absent: got status %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestMuteSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")

	rec := env.do(t, http.MethodPost, "/profiles/:id/mute", nil, alice, env.mute.MuteProfile, map[string]string{"id": fmt.Sprint(alice.ID)})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self mute: got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMuteWorksAcrossBlock(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createProfile(t, "alice")
	bob := env.createProfile(t, "bob")

	// bob blocked alice; muting him must still succeed
	mustCreateInteraction(t, env, bob.ID, alice.ID, models.InteractionBlock)

	rec := env.do(t, http.MethodPost, "/profiles/:id/mute", nil, alice, env.mute.MuteProfile, map[string]string{"id": fmt.Sprint(bob.ID)})
	if rec.Code != http.StatusOK {
		t.Fatalf("mute across block: got status %d: %s", rec.Code, rec.Body.String())
	}
}
