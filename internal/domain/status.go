package domain

type Status string

const (
	// StatusDraft заказ принят ботом и ждёт разбора менеджером;
	StatusDraft Status = "draft"
	// StatusPending заказ ожидает подтверждения оплаты;
	StatusPending Status = "pending"
	// StatusConfirmed заказ подтверждён;
	StatusConfirmed Status = "confirmed"
	// StatusInProgress работа выполняется;
	StatusInProgress Status = "in_progress"
	// StatusReview работа передана на проверку;
	StatusReview Status = "review"
	// StatusRevision работа возвращена на доработку;
	StatusRevision Status = "revision"
	// StatusCompleted заказ завершён;
	StatusCompleted Status = "completed"
	// StatusCancelled заказ отменён.
	StatusCancelled Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusDraft:      {StatusPending: true, StatusCancelled: true},
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true},
	StatusInProgress: {StatusReview: true, StatusCancelled: true},
	StatusReview:     {StatusRevision: true, StatusCompleted: true, StatusCancelled: true},
	StatusRevision:   {StatusReview: true, StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
