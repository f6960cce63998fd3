package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
)

type fakeRepo struct {
	stored  *Preferences
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeRepo) Load(context.Context) (Preferences, bool, error) {
	if f.loadErr != nil {
		return Preferences{}, false, f.loadErr
	}
	if f.stored == nil {
		return Preferences{}, false, nil
	}
	return *f.stored, true, nil
}

func (f *fakeRepo) Save(_ context.Context, prefs Preferences) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = &prefs
	f.saves++
	return nil
}

func TestGetReturnsDefaultsOnFirstRun(t *testing.T) {
	svc := NewService(&fakeRepo{}, logger.New("test"))
	got := svc.Get(context.Background())
	if got != Default() {
		t.Errorf("Get() = %+v, want defaults", got)
	}
}

func TestGetFallsBackToDefaultsOnLoadError(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("corrupt document")}
	svc := NewService(repo, logger.New("test"))
	got := svc.Get(context.Background())
	if got != Default() {
		t.Errorf("Get() = %+v, want defaults", got)
	}
}

func TestGetUsesStoredDocument(t *testing.T) {
	stored := Default()
	stored.BgsEnableSimulation = false
	svc := NewService(&fakeRepo{stored: &stored}, logger.New("test"))

	if got := svc.Get(context.Background()); got.BgsEnableSimulation {
		t.Error("stored document not used")
	}
}

func TestUpdatePersistsAndNotifies(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, logger.New("test"))

	var notified []Preferences
	svc.OnChange(func(prefs Preferences) {
		notified = append(notified, prefs)
	})

	updated, err := svc.Update(context.Background(), func(prefs Preferences) Preferences {
		prefs.DecktrackerShowOpponent = false
		return prefs
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DecktrackerShowOpponent {
		t.Error("mutation not applied")
	}
	if repo.stored == nil || repo.stored.DecktrackerShowOpponent {
		t.Error("update not persisted")
	}
	if len(notified) != 1 || notified[0].DecktrackerShowOpponent {
		t.Errorf("listeners = %+v, want one notification with the update", notified)
	}

	// Subsequent reads see the update without another load.
	if got := svc.Get(context.Background()); got.DecktrackerShowOpponent {
		t.Error("cached document not updated")
	}
}

func TestUpdateSaveFailureStillReturnsDocument(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	svc := NewService(repo, logger.New("test"))

	notified := 0
	svc.OnChange(func(Preferences) { notified++ })

	updated, err := svc.Update(context.Background(), func(prefs Preferences) Preferences {
		prefs.OverlayShowSecretsHelper = false
		return prefs
	})
	if err == nil {
		t.Fatal("expected a save error")
	}
	if updated.OverlayShowSecretsHelper {
		t.Error("mutation lost on save failure")
	}
	if notified != 0 {
		t.Error("listeners notified despite the save failing")
	}
}

func TestLastWriteWins(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, logger.New("test"))
	ctx := context.Background()

	_, _ = svc.Update(ctx, func(prefs Preferences) Preferences {
		prefs.BgsShowSimResultsOnlyOnRecruit = true
		return prefs
	})
	_, _ = svc.Update(ctx, func(prefs Preferences) Preferences {
		prefs.BgsShowSimResultsOnlyOnRecruit = false
		return prefs
	})

	if repo.saves != 2 {
		t.Errorf("saves = %d, want 2", repo.saves)
	}
	if svc.Get(ctx).BgsShowSimResultsOnlyOnRecruit {
		t.Error("second write did not win")
	}
}
