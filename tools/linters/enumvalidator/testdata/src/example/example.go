package example

type NegotiationStatus string

const (
	NegotiationStatusPending  NegotiationStatus = "PENDING"
	NegotiationStatusAccepted NegotiationStatus = "ACCEPTED"
)

type PaymentKind string

const (
	PaymentKindQuestion PaymentKind = "question"
)

type NotificationType string

const (
	NotificationTypeBestSelected NotificationType = "BEST_SELECTED"
)

type Negotiation struct {
	Status NegotiationStatus
}

type Purchase struct {
	Kind PaymentKind
}

type Notification struct {
	Type    NotificationType
	Message string
}

type Answer struct {
	Status *NegotiationStatus
}

func bad() {
	n := &Negotiation{}
	n.Status = "ACCEPTED" // want "enum field Status assigned string literal; use a NegotiationStatus constant"

	p := Purchase{Kind: "question"} // want "enum field Kind assigned string literal; use a PaymentKind constant"
	_ = p

	note := Notification{
		Type:    ("BEST_SELECTED"), // want "enum field Type assigned string literal; use a NotificationType constant"
		Message: "ok",
	}
	_ = note
}

func good() {
	n := &Negotiation{}
	n.Status = NegotiationStatusAccepted

	p := Purchase{Kind: PaymentKindQuestion}
	_ = p

	// Plain string fields are not enums.
	note := Notification{Type: NotificationTypeBestSelected, Message: "hello"}
	_ = note
}

func alsoGood() {
	status := NegotiationStatusPending
	n := Negotiation{Status: status}
	_ = n

	a := Answer{Status: &status}
	_ = a
}
