package repository

// Models lists every persisted row type in dependency order, for
// AutoMigrate. The unique index on bookings (creator_id, session_date) is
// the storage-level double-booking guard and must exist before the API
// accepts traffic.
func Models() []any {
	return []any{
		&userModel{},
		&categoryModel{},
		&skillModel{},
		&bookingModel{},
		&reviewModel{},
		&eventModel{},
		&eventRegistrationModel{},
		&availabilityWindowModel{},
	}
}
