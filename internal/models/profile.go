package models

import "time"

// ProfilePatch lists the profile fields a caller may update.
// Nil fields are left untouched.
type ProfilePatch struct {
	FirstName   *string      `json:"first_name,omitempty"`
	LastName    *string      `json:"last_name,omitempty"`
	Username    *string      `json:"username,omitempty"`
	Age         *int         `json:"age,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	Photos      []string     `json:"photos,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
	IsActive    *bool        `json:"is_active,omitempty"`
}

// DefaultPreferences returns the preferences given to a new profile
func DefaultPreferences() Preferences {
	return Preferences{MinAge: 18, MaxAge: 50, MaxDistance: 50}
}

// DefaultProfile builds the profile derived from the identity alone
func DefaultProfile(identity Identity, now time.Time) UserProfile {
	firstName := identity.FirstName
	if firstName == "" {
		firstName = "Гость"
	}
	prefs := DefaultPreferences()
	return UserProfile{
		Candidate: Candidate{
			ID:        identity.Key(),
			FirstName: firstName,
			LastName:  identity.LastName,
			Username:  identity.Username,
			Age:       18,
			Photos:    []string{DefaultAvatar},
		},
		PlatformUserID: identity.ID,
		Preferences:    &prefs,
		IsActive:       true,
		LastSeen:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MergeProfile applies identity defaults < persisted < patch, then stamps
// last_seen and updated_at with now. created_at of the persisted profile is kept.
func MergeProfile(base UserProfile, persisted *UserProfile, patch ProfilePatch, now time.Time) UserProfile {
	next := base
	next.Photos = copyPhotos(base.Photos)

	if persisted != nil {
		overlayProfile(&next, persisted)
	}
	applyPatch(&next, patch)

	next.LastSeen = now
	next.UpdatedAt = now
	if persisted != nil && !persisted.CreatedAt.IsZero() {
		next.CreatedAt = persisted.CreatedAt
	} else {
		next.CreatedAt = now
	}
	return next
}

// overlayProfile copies the persisted profile over dst field by field, so a
// value the user cleared stays cleared. Only nil photos and nil preferences
// mean the record never carried them.
func overlayProfile(dst *UserProfile, src *UserProfile) {
	dst.ID = src.ID
	dst.FirstName = src.FirstName
	dst.LastName = src.LastName
	dst.Username = src.Username
	dst.Age = src.Age
	dst.Bio = src.Bio
	if src.Photos != nil {
		dst.Photos = copyPhotos(src.Photos)
	}
	dst.PlatformUserID = src.PlatformUserID
	if src.Preferences != nil {
		prefs := *src.Preferences
		dst.Preferences = &prefs
	}
	dst.IsActive = src.IsActive
}

// copyPhotos returns an unaliased copy that keeps an empty list non-nil
func copyPhotos(photos []string) []string {
	out := make([]string, len(photos))
	copy(out, photos)
	return out
}

func applyPatch(dst *UserProfile, patch ProfilePatch) {
	if patch.FirstName != nil {
		dst.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		dst.LastName = *patch.LastName
	}
	if patch.Username != nil {
		dst.Username = *patch.Username
	}
	if patch.Age != nil {
		dst.Age = *patch.Age
	}
	if patch.Bio != nil {
		dst.Bio = *patch.Bio
	}
	if patch.Photos != nil {
		dst.Photos = copyPhotos(patch.Photos)
	}
	if patch.Preferences != nil {
		prefs := *patch.Preferences
		dst.Preferences = &prefs
	}
	if patch.IsActive != nil {
		dst.IsActive = *patch.IsActive
	}
}

// BackfillTimestamps fills missing timestamps with now on read.
// The result is not written back.
func BackfillTimestamps(profile UserProfile, now time.Time) UserProfile {
	if profile.LastSeen.IsZero() {
		profile.LastSeen = now
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
	return profile
}

// AsSender returns the candidate view of the profile used as a message author
func (p UserProfile) AsSender() Candidate {
	sender := p.Candidate
	sender.Photos = append([]string(nil), p.Photos...)
	if len(sender.Photos) == 0 {
		sender.Photos = []string{DefaultAvatar}
	}
	return sender
}

// FilterByPreferences keeps candidates whose age falls inside the preferred range.
// Nil preferences disable filtering.
func FilterByPreferences(candidates []Candidate, prefs *Preferences) []Candidate {
	if prefs == nil {
		return candidates
	}
	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Age >= prefs.MinAge && c.Age <= prefs.MaxAge {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
