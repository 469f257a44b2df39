package cqrs

type RegisterMemberCommand struct {
	MemberID  string
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Password  string
}

type LoginCommand struct {
	Identifier string
	Password   string
}
