package model

import "github.com/golang-jwt/jwt/v5"

type CentrifugoEvent struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type CentrifugoEventParams struct {
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

type CentrifugoConnectClaims struct {
	jwt.RegisteredClaims
}

type CentrifugoSubscribeClaims struct {
	jwt.RegisteredClaims

	Channel string `json:"channel"`
	Client  string `json:"client,omitempty"`

	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
}
