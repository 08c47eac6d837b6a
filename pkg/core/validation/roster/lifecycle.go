package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
)

// Editable allows changes only to NEW or PARTIAL rosters without approved days off.
// Every blocking reason is reported.
type Editable struct {
	store Store
}

func NewEditable(store Store) *Editable {
	return &Editable{store: store}
}

func (v *Editable) Name() string {
	return "Editable"
}

func (v *Editable) Validate(ctx context.Context, r *model.Roster) (validation.Result, error) {
	var reasons []string
	if r.Status.IsLocked() {
		reasons = append(reasons, fmt.Sprintf("it is in state %s", r.Status))
	}

	approved, err := hasApprovedDayOffs(ctx, v.store, r.ID)
	if err != nil {
		return validation.Result{}, err
	}
	if approved {
		reasons = append(reasons, "it has approved day-off requests")
	}

	if len(reasons) > 0 {
		return validation.Invalid("Roster %s cannot be modified because %s.", r.Period(), strings.Join(reasons, " and ")), nil
	}
	return validation.OK(), nil
}

// DeletionPossible allows deleting only NEW or PARTIAL rosters with no approved days off and no
// recorded work days. Every blocking reason is reported.
type DeletionPossible struct {
	store Store
}

func NewDeletionPossible(store Store) *DeletionPossible {
	return &DeletionPossible{store: store}
}

func (v *DeletionPossible) Name() string {
	return "DeletionPossible"
}

func (v *DeletionPossible) Validate(ctx context.Context, r *model.Roster) (validation.Result, error) {
	var reasons []string
	if r.Status.IsLocked() {
		reasons = append(reasons, fmt.Sprintf("it is already %s", r.Status))
	}

	approved, err := hasApprovedDayOffs(ctx, v.store, r.ID)
	if err != nil {
		return validation.Result{}, err
	}
	if approved {
		reasons = append(reasons, "it has approved day-off requests")
	}

	records, err := v.store.CountWorkDayRecords(ctx, r.ID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to count work day records: %w", err)
	}
	if records > 0 {
		reasons = append(reasons, fmt.Sprintf("it has %d work day record(s)", records))
	}

	if len(reasons) > 0 {
		return validation.Invalid("Roster %s cannot be deleted because %s.", r.Period(), strings.Join(reasons, " and ")), nil
	}
	return validation.OK(), nil
}

func hasApprovedDayOffs(ctx context.Context, store Store, rosterID int64) (bool, error) {
	dayOffs, err := store.ListRosterDayOffs(ctx, rosterID)
	if err != nil {
		return false, fmt.Errorf("failed to list roster day offs: %w", err)
	}
	for _, d := range dayOffs {
		if d.Status == model.DayOffApproved {
			return true, nil
		}
	}
	return false, nil
}
