package domain

type (
	Email     = string
	Password  = string
	AccountId = int64

	NoteId    = int64
	NoteTitle = string
	NoteBody  = string

	AuditId = int64
)
