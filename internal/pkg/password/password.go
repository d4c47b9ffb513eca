package password

import "golang.org/x/crypto/bcrypt"

// bcrypt.DefaultCost (10) keeps hashing deliberately slow against
// offline brute force while staying under ~100ms per login.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
