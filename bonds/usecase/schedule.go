package usecase

import (
	"time"

	"github.com/migaloo-labs/bqs/domain"
)

// maturityAutoAdvance is applied when a purchase end edit overtakes the
// stored maturity. The correction is one-way: editing maturity never
// moves the purchase end.
const maturityAutoAdvance = time.Hour

// scheduleDateLayout pairs a locale-invariant calendar date with a
// 24-hour time. The two are combined by direct concatenation before
// being parsed back into an absolute instant for offset math.
const (
	scheduleDateLayout     = "2006-01-02"
	scheduleTimeLayout     = "15:04"
	scheduleDateTimeLayout = scheduleDateLayout + "T" + scheduleTimeLayout
)

// CombineDateTime combines a YYYY-MM-DD date and a 24-hour HH:MM time
// into an absolute instant in the given location.
func CombineDateTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	combined := date + "T" + timeOfDay

	instant, err := time.ParseInLocation(scheduleDateTimeLayout, combined, loc)
	if err != nil {
		return time.Time{}, domain.InvalidInputError{Field: "date", Reason: err.Error()}
	}

	return instant, nil
}

// IsPast reports whether the instant has lapsed relative to the reference
// clock. Consumers re-evaluate this on a periodic tick to detect drift
// between form composition and submission.
func IsPast(instant, reference time.Time) bool {
	return instant.Before(reference)
}

// ReduceDraft implements mvc.BondsUsecase.
// It applies a single edit and repairs the coupling invariants:
//   - a purchase end edit that overtakes maturity advances maturity by one hour
//   - immediate claim forces the claim window of a vested bond to span
//     purchase end through maturity
func (b *bondsUseCase) ReduceDraft(draft domain.BondDraft, event domain.ScheduleEvent) domain.BondDraft {
	switch e := event.(type) {
	case domain.SetInstantEvent:
		switch e.Field {
		case domain.ScheduleFieldPurchaseStart:
			draft.PurchaseStart = e.Value
		case domain.ScheduleFieldPurchaseEnd:
			draft.PurchaseEnd = e.Value
			if !draft.Maturity.After(draft.PurchaseEnd) {
				draft.Maturity = draft.PurchaseEnd.Add(maturityAutoAdvance)
			}
		case domain.ScheduleFieldClaimStart:
			draft.ClaimStart = e.Value
			draft.HasExplicitClaimWindow = true
		case domain.ScheduleFieldClaimEnd:
			draft.ClaimEnd = e.Value
			draft.HasExplicitClaimWindow = true
		case domain.ScheduleFieldMaturity:
			draft.Maturity = e.Value
		}
	case domain.SetImmediateClaimEvent:
		draft.ImmediateClaim = e.ImmediateClaim
	case domain.SetBondTypeEvent:
		draft.BondType = e.BondType
	}

	return repairClaimWindow(draft)
}

// repairClaimWindow applies the immediate-claim override after every edit.
// The override wins over any manually entered claim window.
func repairClaimWindow(draft domain.BondDraft) domain.BondDraft {
	if draft.BondType == domain.BondTypeVested && draft.ImmediateClaim {
		draft.ClaimStart = draft.PurchaseEnd
		draft.ClaimEnd = draft.Maturity
		draft.HasExplicitClaimWindow = false
	}

	return draft
}

// ApplyPreset implements mvc.BondsUsecase.
// Every field is derived from the same "now" snapshot as
// now + start buffer + preset offset. The maturity offset is measured
// from the snapshot as well, not from the purchase end.
func (b *bondsUseCase) ApplyPreset(draft domain.BondDraft, presetName string, now time.Time) (domain.BondDraft, error) {
	preset, ok := b.presetsByName[presetName]
	if !ok {
		return domain.BondDraft{}, PresetNotFoundError{Name: presetName}
	}

	buffer := b.config.StartBufferMinutes

	draft.PurchaseStart = now.Add(time.Duration(buffer+preset.StartMinutes) * time.Minute)
	draft.PurchaseEnd = now.Add(time.Duration(buffer+preset.EndMinutes) * time.Minute)
	draft.Maturity = now.Add(time.Duration(buffer+preset.MaturityMinutes) * time.Minute)

	if draft.BondType == domain.BondTypeCliff {
		draft.ClaimStart = draft.Maturity
		draft.ClaimEnd = draft.Maturity
	} else {
		draft.ClaimStart = draft.PurchaseEnd.Add(time.Duration(b.config.VestedClaimBufferMinutes) * time.Minute)
		draft.ClaimEnd = draft.Maturity
	}
	draft.HasExplicitClaimWindow = false

	return repairClaimWindow(draft), nil
}

// GetPresets implements mvc.BondsUsecase.
func (b *bondsUseCase) GetPresets() []domain.DurationPreset {
	return b.presets
}

// ValidateSchedule implements mvc.BondsUsecase.
// These are hard preconditions. Submission must not proceed if violated.
func (b *bondsUseCase) ValidateSchedule(draft domain.BondDraft, now time.Time) error {
	if !draft.PurchaseEnd.After(draft.PurchaseStart) {
		return domain.InvalidScheduleError{Reason: "end before start"}
	}

	if !draft.Maturity.After(draft.PurchaseEnd) {
		return domain.InvalidScheduleError{Reason: "maturity before end"}
	}

	return nil
}

// RepairLapsed implements mvc.BondsUsecase.
// Any field that has lapsed by the time of the re-check is advanced to
// the current instant plus the configured correction.
func (b *bondsUseCase) RepairLapsed(draft domain.BondDraft, now time.Time) domain.BondDraft {
	correction := time.Duration(b.config.LapsedCorrectionMinutes) * time.Minute

	repair := func(instant time.Time) time.Time {
		if !IsPast(instant, now) {
			return instant
		}
		return now.Add(correction)
	}

	draft.PurchaseStart = repair(draft.PurchaseStart)
	draft.PurchaseEnd = repair(draft.PurchaseEnd)
	draft.ClaimStart = repair(draft.ClaimStart)
	draft.ClaimEnd = repair(draft.ClaimEnd)
	draft.Maturity = repair(draft.Maturity)

	return repairClaimWindow(draft)
}

// GetScheduleOffsets implements mvc.BondsUsecase.
// Offsets are rounded up to whole minutes and must be strictly positive
// for a valid draft.
func (b *bondsUseCase) GetScheduleOffsets(draft domain.BondDraft, now time.Time) (domain.ScheduleOffsets, error) {
	startOffset, err := minuteOffset(string(domain.ScheduleFieldPurchaseStart), draft.PurchaseStart, now)
	if err != nil {
		return domain.ScheduleOffsets{}, err
	}

	endOffset, err := minuteOffset(string(domain.ScheduleFieldPurchaseEnd), draft.PurchaseEnd, now)
	if err != nil {
		return domain.ScheduleOffsets{}, err
	}

	maturityOffset, err := minuteOffset(string(domain.ScheduleFieldMaturity), draft.Maturity, now)
	if err != nil {
		return domain.ScheduleOffsets{}, err
	}

	claimStartOffset := maturityOffset
	if draft.BondType == domain.BondTypeVested {
		if draft.HasExplicitClaimWindow {
			claimStartOffset, err = minuteOffset(string(domain.ScheduleFieldClaimStart), draft.EffectiveClaimStart(), now)
			if err != nil {
				return domain.ScheduleOffsets{}, err
			}
		} else {
			claimStartOffset = endOffset + b.config.VestedClaimBufferMinutes
		}
	}

	return domain.ScheduleOffsets{
		StartOffsetMinutes:      startOffset,
		EndOffsetMinutes:        endOffset,
		ClaimStartOffsetMinutes: claimStartOffset,
		MaturityOffsetMinutes:   maturityOffset,
	}, nil
}

// minuteOffset returns ceil((instant - now) / minute).
func minuteOffset(field string, instant, now time.Time) (int64, error) {
	diff := instant.Sub(now)
	if diff <= 0 {
		return 0, domain.PastInstantError{Field: field, Instant: instant}
	}

	offset := int64(diff / time.Minute)
	if diff%time.Minute != 0 {
		offset++
	}

	return offset, nil
}
