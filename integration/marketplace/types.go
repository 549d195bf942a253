package marketplace

import "time"

// User is an account profile as the backend serializes it. The same shape
// appears in login responses, order records, and store admin listings.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Contact   string `json:"contact,omitempty"`
	Address   string `json:"address,omitempty"`
}

// LoginResult is the response of a successful credential exchange.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
	Message     string `json:"message,omitempty"`
}

// Product is a catalog record, including the embedded category the list
// endpoints return.
type Product struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	NameAr         string    `json:"nameAr,omitempty"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	MedicineFamily string    `json:"medicineFamily,omitempty"`
	Price          float64   `json:"price"`
	CategoryID     int       `json:"categoryId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Category       *Category `json:"category,omitempty"`
}

// ProductInput is the write payload for creating or updating a product.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int     `json:"categoryId"`
	Image       string  `json:"image"`
}

// Category is a product category record.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryOption is a category projected into a select-list entry.
type CategoryOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// OrderStatus is an order lifecycle state.
type OrderStatus struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

// OrderItem is a single line of an order with its resolved product.
type OrderItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// Order is a customer order with its placer, status, and line items.
// AcceptedByID is nil until an admin accepts the order.
type Order struct {
	ID           int         `json:"id"`
	UserID       int         `json:"userId"`
	OrderStatus  int         `json:"orderStatusId"`
	AcceptedByID *int        `json:"acceptedById"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	User         User        `json:"user"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
}

// Store is a pharmacy storefront record.
type Store struct {
	ID          int       `json:"id"`
	NameEn      string    `json:"nameEn"`
	NameAr      string    `json:"nameAr"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StoreInput is the write payload for creating or updating a store.
type StoreInput struct {
	NameEn      string `json:"nameEn"`
	NameAr      string `json:"nameAr"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Address     string `json:"address"`
}

// StoreAdmin links an admin account to the store it manages.
type StoreAdmin struct {
	UserID  int  `json:"userId"`
	StoreID int  `json:"storeId"`
	User    User `json:"user"`
}

// RegisterAdminInput is the payload for registering a new store admin
// account before assigning it to a store.
type RegisterAdminInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	DOB       string `json:"dob,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Address   string `json:"address,omitempty"`
}

// RegisterResult is the response of an admin registration.
type RegisterResult struct {
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}

// AssignAdminRequest binds a registered user to a store.
type AssignAdminRequest struct {
	StoreID int `json:"storeId"`
	UserID  int `json:"userId"`
}
