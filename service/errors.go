package service

import (
	"errors"

	"scheme-details/repository"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrSchemeNotFound = repository.ErrSchemeNotFound
)
