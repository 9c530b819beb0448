package request

// ByIDRequest binds the :id path segment shared by the branch, room and
// reservation detail routes. IDs are always UUIDs.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
