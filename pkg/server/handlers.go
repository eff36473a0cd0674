package server

import (
	"Loyo/handler"
)

type Handlers struct {
	Business   *handler.Business
	Class      *handler.Class
	Membership *handler.Membership
	Referral   *handler.Referral
	Migration  *handler.Migration
	Summary    *handler.Summary
}
