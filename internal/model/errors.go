package model

import "errors"

// Common errors used across the application
var (
	// Input errors
	ErrInvalidIndex = errors.New("index must be a non-negative integer")
	ErrInvalidCount = errors.New("count must be greater than zero and within the bootstrap limit")

	// Configuration errors
	ErrUnknownRanch = errors.New("ranch has no trait mapping")

	// Player errors
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerExists      = errors.New("player already exists")
	ErrNegativePoints    = errors.New("points cannot go below zero")
	ErrKeyImmutable      = errors.New("player key cannot be changed")
	ErrUsernameImmutable = errors.New("player username cannot be changed")

	// Trade errors
	ErrTradeNotFound = errors.New("trade not found")
	ErrSelfTrade     = errors.New("a player cannot trade with themselves")
)
