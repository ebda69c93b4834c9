package crypto

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// 旧站点口令为 MD5；登录成功后升级为 bcrypt

func MD5Hex(s string) string {
	h := md5.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

func IsLegacyMD5(s string) bool {
	return len(s) == 32 && !strings.HasPrefix(s, "$2")
}

const bcryptCost = bcrypt.DefaultCost

// HashPassword 生成 bcrypt 哈希（60 字符，适配 varchar(64)）
func HashPassword(pwd string) string {
	bs, err := bcrypt.GenerateFromPassword([]byte(pwd), bcryptCost)
	if err != nil {
		return MD5Hex(pwd) // 兜底
	}
	return string(bs)
}

// VerifyPassword 自动检测算法（legacy md5 或 $2 开头的 bcrypt）
func VerifyPassword(plain, stored string) bool {
	if IsLegacyMD5(stored) {
		return MD5Hex(plain) == stored
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return false
}
