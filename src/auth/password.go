package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is fixed so hashes stay comparable across deployments.
const PasswordCost = 10

// MaxPasswordBytes is the longest input bcrypt hashes.
const MaxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
