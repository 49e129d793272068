package validate

import (
	"crypto/rand"
	"math/big"

	"github.com/ShiraazMoollatjie/goluhn"
)

// OrderIDBodyLen is the number of random digits before the check digit.
const OrderIDBodyLen = 9

func IsLuna(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// NewOrderID returns OrderIDBodyLen random digits followed by a Luhn check digit.
func NewOrderID() (string, error) {
	body := make([]byte, OrderIDBodyLen)
	ten := big.NewInt(10)
	for i := range body {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		body[i] = byte('0' + d.Int64())
	}
	if body[0] == '0' {
		body[0] = '1'
	}
	_, id, err := goluhn.Calculate(string(body))
	if err != nil {
		return "", err
	}
	return id, nil
}
