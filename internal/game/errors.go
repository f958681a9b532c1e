package game

import "errors"

var (
	ErrRoomExists       = errors.New("room already exists")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrWrongState       = errors.New("invalid state for action")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrNotHost          = errors.New("only the host can do that")
	ErrNotDrawer        = errors.New("only the drawer can do that")
)
