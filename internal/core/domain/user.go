package domain

// UserRecord is one row of the admin user listing. The server owns these;
// the console only holds a read-only cache in server response order.
type UserRecord struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Role      Role   `json:"roletype"`
}
