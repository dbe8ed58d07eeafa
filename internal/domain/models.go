package domain

// Pet is a catalog animal as stored. JSON lists (images, additional info)
// live in TEXT columns and are decoded at the service boundary.
type Pet struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	Category       string  `db:"category"`
	Type           string  `db:"type"`
	Breed          string  `db:"breed"`
	Age            string  `db:"age"`
	Color          string  `db:"color"`
	Gender         string  `db:"gender"` // Male | Female | N/A
	Size           string  `db:"size"`   // Tiny | Small | Medium | Large
	Weight         float64 `db:"weight"`
	Price          float64 `db:"price"`
	Location       string  `db:"location"`
	Description    string  `db:"description"`
	ImagesJSON     string  `db:"images_json"`
	AdditionalJSON string  `db:"additional_json"`
	MapAddress     string  `db:"map_address"`
	MapLink        string  `db:"map_link"`
	MapLat         float64 `db:"map_lat"`
	MapLng         float64 `db:"map_lng"`
	HasMap         bool    `db:"has_map"`
	CreatedAt      string  `db:"created_at"`
	UpdatedAt      string  `db:"updated_at"`
}

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Category    string  `db:"category"`
	Type        string  `db:"type"`
	Color       string  `db:"color"`
	Price       float64 `db:"price"`
	Stock       int     `db:"stock"`
	Description string  `db:"description"`
	ImagesJSON  string  `db:"images_json"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	Author    string `db:"author" json:"author"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// Reservation statuses. Admin notes can be attached in any state without
// counting as a transition.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

type Reservation struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Email       string `db:"email" json:"email"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	Date        string `db:"date" json:"date"`
	Species     string `db:"species" json:"species,omitempty"`
	Breed       string `db:"breed" json:"breed,omitempty"`
	Reason      string `db:"reason" json:"reason,omitempty"`
	SpecialNote string `db:"special_note" json:"specialNote,omitempty"`
	Status      string `db:"status" json:"status"`
	AdminNotes  string `db:"admin_notes" json:"adminNotes,omitempty"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt,omitempty"`
}

type GalleryImage struct {
	ID        string `db:"id" json:"id"`
	URL       string `db:"url" json:"url"`
	Caption   string `db:"caption" json:"caption,omitempty"`
	Position  int    `db:"position" json:"position"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type TeamMember struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Role      string `db:"role" json:"role"`
	Photo     string `db:"photo" json:"photo,omitempty"`
	Bio       string `db:"bio" json:"bio,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
