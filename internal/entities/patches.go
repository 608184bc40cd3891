package entities

// Patch types for partial updates. Every field is a pointer so "not
// supplied" (nil) is distinguishable from "supplied as zero value"; only
// non-nil fields end up in the update set.

type AuthorPatch struct {
	Name *string `json:"name"`
}

func (p AuthorPatch) Updates() map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	return updates
}

type BookPatch struct {
	Name       *string `json:"name"`
	IsAgeLimit *bool   `json:"is_age_limit"`
	AuthorID   *uint   `json:"author_id"`
}

func (p BookPatch) Updates() map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.IsAgeLimit != nil {
		updates["is_age_limit"] = *p.IsAgeLimit
	}
	if p.AuthorID != nil {
		updates["author_id"] = *p.AuthorID
	}
	return updates
}

// ReaderPatch.Password carries plaintext from the request; the reader
// service hashes it before it reaches the update set.
type ReaderPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Age      *int    `json:"age" binding:"omitempty,min=0"`
}

func (p ReaderPatch) Updates() map[string]any {
	updates := map[string]any{}
	if p.Username != nil {
		updates["username"] = *p.Username
	}
	if p.Password != nil {
		updates["password"] = *p.Password
	}
	if p.Age != nil {
		updates["age"] = *p.Age
	}
	return updates
}
