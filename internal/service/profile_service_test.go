package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestProfileService(t *testing.T) (*ProfileService, *fakeProfileRepo, *fakeUserRepo) {
	t.Helper()
	profileRepo := newFakeProfileRepo()
	userRepo := newFakeUserRepo()
	return NewProfileService(profileRepo, userRepo), profileRepo, userRepo
}

func strPtr(s string) *string { return &s }

func TestUpsert_CreatesProfile(t *testing.T) {
	svc, _, userRepo := newTestProfileService(t)
	ctx := context.Background()
	userID := seedUser(t, userRepo, "alice")

	profile, err := svc.Upsert(ctx, userID, ProfilePatch{
		Status: strPtr("Developer"),
		Skills: strPtr("Go, MongoDB , HTTP"),
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if profile.Status != "Developer" {
		t.Errorf("Status = %q, want Developer", profile.Status)
	}
	if want := []string{"Go", "MongoDB", "HTTP"}; !reflect.DeepEqual(profile.Skills, want) {
		t.Errorf("Skills = %v, want %v (split and trimmed, order kept)", profile.Skills, want)
	}
}

// Two upserts with disjoint field sets must merge, not replace.
func TestUpsert_PartialMerge(t *testing.T) {
	svc, _, userRepo := newTestProfileService(t)
	ctx := context.Background()
	userID := seedUser(t, userRepo, "alice")

	if _, err := svc.Upsert(ctx, userID, ProfilePatch{
		Status:  strPtr("Developer"),
		Skills:  strPtr("Go"),
		Company: strPtr("Acme"),
		Youtube: strPtr("https://youtube.com/acme"),
	}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	profile, err := svc.Upsert(ctx, userID, ProfilePatch{
		Status:   strPtr("Developer"),
		Skills:   strPtr("Go"),
		Location: strPtr("Zagreb"),
		Twitter:  strPtr("https://twitter.com/acme"),
	})
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	if profile.Company != "Acme" {
		t.Errorf("Company = %q after disjoint update, want Acme preserved", profile.Company)
	}
	if profile.Location != "Zagreb" {
		t.Errorf("Location = %q, want Zagreb", profile.Location)
	}
	if profile.Social.Youtube == "" || profile.Social.Twitter == "" {
		t.Errorf("Social = %+v, want union of both patches", profile.Social)
	}
}

func TestMe(t *testing.T) {
	svc, _, userRepo := newTestProfileService(t)
	ctx := context.Background()
	userID := seedUser(t, userRepo, "alice")

	if _, err := svc.Me(ctx, userID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("Me() without profile error = %v, want ErrProfileNotFound", err)
	}

	if _, err := svc.Upsert(ctx, userID, ProfilePatch{Status: strPtr("Dev"), Skills: strPtr("Go")}); err != nil {
		t.Fatal(err)
	}

	profile, err := svc.Me(ctx, userID)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if profile.UserName != "alice" || profile.UserAvatar == "" {
		t.Errorf("joined user fields = %q/%q, want owner name and avatar", profile.UserName, profile.UserAvatar)
	}
}

func TestExperience_RoundTrip(t *testing.T) {
	svc, _, userRepo := newTestProfileService(t)
	ctx := context.Background()
	userID := seedUser(t, userRepo, "alice")

	if _, err := svc.AddExperience(ctx, userID, ExperienceInput{Title: "Dev", Company: "Acme", From: "2019-01-01"}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("AddExperience() without profile error = %v, want ErrProfileNotFound", err)
	}

	if _, err := svc.Upsert(ctx, userID, ProfilePatch{Status: strPtr("Dev"), Skills: strPtr("Go")}); err != nil {
		t.Fatal(err)
	}

	base, err := svc.AddExperience(ctx, userID, ExperienceInput{Title: "Junior", Company: "Acme", From: "2017-01-01"})
	if err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}

	added, err := svc.AddExperience(ctx, userID, ExperienceInput{Title: "Senior", Company: "Acme", From: "2020-01-01"})
	if err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}
	if len(added.Experience) != 2 || added.Experience[0].Title != "Senior" {
		t.Fatalf("experience = %+v, want newest entry first", added.Experience)
	}

	// Removing the new entry by its generated id restores the prior list.
	restored, err := svc.RemoveExperience(ctx, userID, added.Experience[0].ID)
	if err != nil {
		t.Fatalf("RemoveExperience() error = %v", err)
	}
	if !reflect.DeepEqual(restored.Experience, base.Experience) {
		t.Errorf("experience after round-trip = %+v, want %+v", restored.Experience, base.Experience)
	}
}

// An unknown experience id is tolerated; the profile comes back unchanged.
func TestRemoveExperience_UnknownID(t *testing.T) {
	svc, _, userRepo := newTestProfileService(t)
	ctx := context.Background()
	userID := seedUser(t, userRepo, "alice")

	if _, err := svc.Upsert(ctx, userID, ProfilePatch{Status: strPtr("Dev"), Skills: strPtr("Go")}); err != nil {
		t.Fatal(err)
	}
	before, err := svc.AddExperience(ctx, userID, ExperienceInput{Title: "Dev", Company: "Acme", From: "2019-01-01"})
	if err != nil {
		t.Fatal(err)
	}

	after, err := svc.RemoveExperience(ctx, userID, uuid.New())
	if err != nil {
		t.Fatalf("RemoveExperience(unknown id) error = %v, want nil (tolerant no-op)", err)
	}
	if !reflect.DeepEqual(after.Experience, before.Experience) {
		t.Errorf("experience changed by unknown-id removal: %+v", after.Experience)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, profileRepo, userRepo := newTestProfileService(t)
	ctx := context.Background()
	userID := seedUser(t, userRepo, "alice")

	if _, err := svc.Upsert(ctx, userID, ProfilePatch{Status: strPtr("Dev"), Skills: strPtr("Go")}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if p, _ := profileRepo.GetByUserID(ctx, userID); p != nil {
		t.Error("profile still present after account deletion")
	}
	if u, _ := userRepo.GetByID(ctx, userID); u != nil {
		t.Error("user still present after account deletion")
	}
}

func TestByUserID_Unknown(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	if _, err := svc.ByUserID(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("ByUserID(unknown) error = %v, want ErrProfileNotFound", err)
	}
}
