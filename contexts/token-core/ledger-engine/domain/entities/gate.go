package entities

import domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"

// OperationalFlags is the pause/emergency state machine. The two flags are
// independent and not mutually exclusive. Toggling a flag into the state it
// is already in fails rather than silently succeeding, so operator mistakes
// surface immediately.
type OperationalFlags struct {
	paused        bool
	emergencyMode bool
}

func (f *OperationalFlags) Paused() bool {
	return f.paused
}

func (f *OperationalFlags) EmergencyMode() bool {
	return f.emergencyMode
}

func (f *OperationalFlags) Pause() error {
	if f.paused {
		return domainerrors.ErrAlreadyPaused
	}
	f.paused = true
	return nil
}

func (f *OperationalFlags) Unpause() error {
	if !f.paused {
		return domainerrors.ErrAlreadyUnpaused
	}
	f.paused = false
	return nil
}

func (f *OperationalFlags) ActivateEmergencyMode() error {
	if f.emergencyMode {
		return domainerrors.ErrAlreadyInEmergencyMode
	}
	f.emergencyMode = true
	return nil
}

func (f *OperationalFlags) DeactivateEmergencyMode() error {
	if !f.emergencyMode {
		return domainerrors.ErrNotInEmergencyMode
	}
	f.emergencyMode = false
	return nil
}
