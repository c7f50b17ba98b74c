package models

type User struct {
	Username  string `json:"username" bson:"username"`
	Firstname string `json:"firstname" bson:"firstname"`
	Password  string `json:"-" bson:"password"`
}
