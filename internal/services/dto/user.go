package dto

// UpdateUserFlagsRequest carries the admin-editable account flags.
// Pointers distinguish "leave unchanged" from an explicit false.
type UpdateUserFlagsRequest struct {
	IsActive   *bool `json:"isactive"`
	IsLocked   *bool `json:"islocked"`
	IsAdmin    *bool `json:"isadmin"`
	IsCustomer *bool `json:"iscustomer"`
	IsWriter   *bool `json:"iswriter"`
}

// UserListItem is the flattened row shape for admin user lists.
type UserListItem struct {
	ID           uint   `json:"id"`
	FullName     string `json:"fullname"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobilenumber"`
	IsActive     bool   `json:"isactive"`
	IsLocked     bool   `json:"islocked"`
	IsAdmin      bool   `json:"isadmin"`
	IsCustomer   bool   `json:"iscustomer"`
	IsWriter     bool   `json:"iswriter"`
}
