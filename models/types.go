// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Table naming conventions
const (
	NamingNumbers = "numbers"
	NamingLetters = "letters"
	NamingRoman   = "roman"
	NamingCustom  = "custom"
)

// Domain types

type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PasswordHash string `json:"-"` // Never expose in JSON
	CreatedAt    int64  `json:"createdAt"`
}

type Event struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Theme       *string `json:"theme,omitempty"`
	UserID      string  `json:"userId"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

type Guest struct {
	ID        string  `json:"id"`
	FullName  string  `json:"fullName"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	EventID   string  `json:"eventId"`
	UserID    string  `json:"userId"`
	// TableID is nil when the guest is unassigned. Clearing it requires an
	// explicit NULL write in the store, never a falsy value.
	TableID   *string `json:"tableId,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

type Table struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Color     string `json:"color"`
	EventID   string `json:"eventId"`
	UserID    string `json:"userId"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type TableWithGuests struct {
	Table
	Guests []Guest `json:"guests"`
}

type UserSettings struct {
	UserID               string  `json:"userId"`
	DisplayName          string  `json:"displayName"`
	Email                string  `json:"email"`
	Phone                *string `json:"phone,omitempty"`
	PhoneVerified        bool    `json:"phoneVerified"`
	NotificationsEnabled bool    `json:"notificationsEnabled"`
	Theme                string  `json:"theme"`
	Language             string  `json:"language"`
	TableNaming          *string `json:"tableNaming,omitempty"`
	TablePrefix          *string `json:"tablePrefix,omitempty"`
	UpdatedAt            int64   `json:"updatedAt"`
}

// Request types

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateEventRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Theme       *string `json:"theme"`
}

// UpdateEventRequest fields are pointers so that omitted fields are left
// untouched. An explicit empty string clears the field.
type UpdateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Theme       *string `json:"theme"`
}

type CreateGuestRequest struct {
	EventID   string  `json:"eventId"`
	FullName  string  `json:"fullName"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Notes     *string `json:"notes"`
}

type UpdateGuestRequest struct {
	FullName  *string `json:"fullName"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Notes     *string `json:"notes"`
}

type GenerateTablesRequest struct {
	EventID          string `json:"eventId"`
	NumTables        int    `json:"numTables"`
	NamingConvention string `json:"namingConvention,omitempty"`
	CustomPrefix     string `json:"customPrefix,omitempty"`
	Capacity         int    `json:"capacity,omitempty"`
}

type AssignGuestRequest struct {
	GuestID string  `json:"guestId"`
	TableID *string `json:"tableId"`
}

// GuestChange is one entry of the diffed change list the assignment editor
// produces. TableID nil means "became unassigned".
type GuestChange struct {
	GuestID string  `json:"guestId"`
	TableID *string `json:"tableId"`
}

type BatchAssignRequest struct {
	GuestChanges []GuestChange `json:"guestChanges"`
}

type AutoAssignRequest struct {
	EventID string `json:"eventId"`
}

// ImportedGuest is a mapped spreadsheet row before persistence.
type ImportedGuest struct {
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone,omitempty"`
	Group    *string `json:"group,omitempty"`
}

// ImportGroup is a detected guest group (e.g. a family) from a free-text
// spreadsheet column.
type ImportGroup struct {
	Name       string   `json:"name"`
	GuestNames []string `json:"guestNames"`
}

type SaveImportRequest struct {
	EventID             string          `json:"eventId"`
	Guests              []ImportedGuest `json:"guests"`
	Groups              []string        `json:"groups"`
	AutoTableAssignment bool            `json:"autoTableAssignment,omitempty"`
}

type UpdateSettingsRequest struct {
	DisplayName          *string `json:"displayName"`
	Email                *string `json:"email"`
	Phone                *string `json:"phone"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	Theme                *string `json:"theme"`
	Language             *string `json:"language"`
	TableNaming          *string `json:"tableNaming"`
	TablePrefix          *string `json:"tablePrefix"`
}

// Response types
//
// Every response carries a success flag. Most failures are reported with
// HTTP 200 and success=false; authentication failures use 401.

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type AuthResponse struct {
	Success bool    `json:"success"`
	Token   string  `json:"token"`
	User    Account `json:"user"`
}

type EventResponse struct {
	Success bool  `json:"success"`
	Event   Event `json:"event"`
}

type EventsResponse struct {
	Success bool    `json:"success"`
	Events  []Event `json:"events"`
}

type DeleteEventResponse struct {
	Success       bool `json:"success"`
	GuestsDeleted int  `json:"guestsDeleted"`
	TablesDeleted int  `json:"tablesDeleted"`
}

type GuestResponse struct {
	Success bool  `json:"success"`
	Guest   Guest `json:"guest"`
}

type GuestsResponse struct {
	Success bool    `json:"success"`
	Guests  []Guest `json:"guests"`
}

type DeleteGuestsResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

type TablesResponse struct {
	Success          bool              `json:"success"`
	Tables           []TableWithGuests `json:"tables"`
	UnassignedGuests []Guest           `json:"unassignedGuests"`
}

type GenerateTablesResponse struct {
	Success bool    `json:"success"`
	Tables  []Table `json:"tables"`
}

type AssignResponse struct {
	Success bool  `json:"success"`
	Guest   Guest `json:"guest"`
}

type BatchAssignResponse struct {
	Success        bool   `json:"success"`
	TotalProcessed int    `json:"totalProcessed"`
	Error          string `json:"error,omitempty"`
}

type AutoAssignResponse struct {
	Success  bool `json:"success"`
	Assigned int  `json:"assigned"`
}

type ImportResponse struct {
	Success        bool          `json:"success"`
	ImportedGuests []Guest       `json:"importedGuests"`
	Groups         []ImportGroup `json:"groups"`
	Message        string        `json:"message"`
}

type SaveImportResponse struct {
	Success       bool   `json:"success"`
	SavedGuests   int    `json:"savedGuests"`
	FailedGuests  int    `json:"failedGuests"`
	TablesCreated int    `json:"tablesCreated"`
	AutoAssigned  int    `json:"autoAssigned"`
	Message       string `json:"message"`
}

type SettingsResponse struct {
	Success  bool         `json:"success"`
	Settings UserSettings `json:"settings"`
}

// Public (guest-facing) types carry no owner or contact information.

type PublicEvent struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Theme       *string `json:"theme,omitempty"`
}

type PublicEventResponse struct {
	Success bool        `json:"success"`
	Event   PublicEvent `json:"event"`
}

type PublicGuest struct {
	FullName   string  `json:"fullName"`
	TableName  *string `json:"tableName,omitempty"`
	TableColor *string `json:"tableColor,omitempty"`
}

type GuestLookupResponse struct {
	Success bool        `json:"success"`
	Guest   PublicGuest `json:"guest"`
}

type SuggestResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}
