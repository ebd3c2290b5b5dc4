package qrc

import "errors"

var (
	ErrAddressRequired  = errors.New("qrc: core address required")
	ErrNotConnected     = errors.New("qrc: no active connection to the core")
	ErrAlreadyConnected = errors.New("qrc: already connected")
	ErrConnectionClosed = errors.New("qrc: connection closed")
	ErrTransport        = errors.New("qrc: transport failure")
	ErrProtocol         = errors.New("qrc: protocol violation")
	ErrCorrelation      = errors.New("qrc: response id mismatch")
	ErrInvalidArgs      = errors.New("qrc: invalid arguments")
)
