package domain

import (
	"strings"
	"unicode"
)

type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Payload is what the relay receives. TotalPrice is computed once here and
// never recomputed downstream.
type Payload struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Region       string `json:"region"`
	Items        []Item `json:"items"`
	TotalPrice   int64  `json:"totalPrice"`
}

// CartLine is the order context's view of a cart line.
type CartLine struct {
	ProductID string
	Name      string
	Quantity  int
	Price     int64
}

func NewPayload(f Form, lines []CartLine) Payload {
	p := Payload{
		CustomerName: strings.TrimFunc(f.CustomerName, unicode.IsSpace),
		Phone:        f.Phone,
		Region:       f.Region,
		Items:        make([]Item, 0, len(lines)),
	}
	for _, l := range lines {
		p.Items = append(p.Items, Item{Name: l.Name, Quantity: l.Quantity, Price: l.Price})
		p.TotalPrice += l.Price * int64(l.Quantity)
	}
	return p
}

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is the user-visible toast raised by a submission.
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

var (
	SuccessNotice = Notice{
		Title:       "Заказ юборилди",
		Description: "Сиз билан тез орада боғланамиз",
		Variant:     NoticeDefault,
	}
	FailureNotice = Notice{
		Title:       "Хатолик",
		Description: "Заказ юборилмади, қайта уриниб кўринг",
		Variant:     NoticeDestructive,
	}
)
