package utils

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"math"
	"net/http"
	"strings"

	"github.com/gagliardetto/solana-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/solotto/solotto-bot/data"
	"github.com/tyler-smith/go-bip39"
)

const hardened = uint32(0x80000000)

type bip32Path []uint32

type bip32 struct {
	Key       []byte
	ChainCode []byte
}

// m/44'/501'/account'/0' - the derivation path Solana wallets use
var path = bip32Path{
	44 + hardened,
	501 + hardened,
	hardened,
	hardened,
}

func GetHTTP(address string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	client := http.DefaultClient
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}

func FormatTgUser(user *tgbotapi.User) string {
	name := fmt.Sprintf("%s %s [%v]", user.FirstName, user.LastName, user.ID)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	if user.UserName != "" {
		name = fmt.Sprintf("@%s (%s)", user.UserName, name)
	}

	return name
}

func FormatDbTgUser(user *data.Telegram) string {
	if user.UserName != "" {
		return "@" + user.UserName
	}

	name := fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	name = fmt.Sprintf("[%s](tg://user?id=%v)", name, user.ID)

	return name
}

// GetPrivateKeyFromSeed derives the ed25519 key of the wallet with the
// given account index from the configured seed phrase.
func GetPrivateKeyFromSeed(index int64) solana.PrivateKey {
	seed := bip39.NewSeed(Seedphrase, "")
	path[2] = hardened + uint32(index&0x7FFFFFFF)
	keyData := derivePrivateKey(seed, path)

	return solana.PrivateKey(ed25519.NewKeyFromSeed(keyData.Key))
}

func GetAddressFromPrivateKey(priv solana.PrivateKey) string {
	return priv.PublicKey().String()
}

func derivePrivateKey(seed []byte, path bip32Path) *bip32 {
	b := &bip32{}
	digest := hmac.New(sha512.New, []byte("ed25519 seed"))
	digest.Write(seed)
	intermediary := digest.Sum(nil)
	b.Key = intermediary[:32]
	b.ChainCode = intermediary[32:]
	for _, childIdx := range path {
		data := make([]byte, 1+32+4)
		data[0] = 0x00
		copy(data[1:1+32], b.Key)
		binary.BigEndian.PutUint32(data[1+32:1+32+4], childIdx)
		digest = hmac.New(sha512.New, b.ChainCode)
		digest.Write(data)
		intermediary = digest.Sum(nil)
		b.Key = intermediary[:32]
		b.ChainCode = intermediary[32:]
	}
	return b
}

func NicePrice(f float64, decimals int) string {
	s := fmt.Sprintf("%v", uint64(f))
	for idx := len(s) - 3; idx > 0; idx -= 3 {
		s = s[:idx] + "," + s[idx:]
	}
	if decimals > 0 {
		s += "."
	}
	for i := 0; i < decimals; i++ {
		f -= math.Trunc(f)
		f *= 10
		s += fmt.Sprintf("%v", uint64(f))
	}

	if decimals == -1 { // auto
		if math.Ceil(f) == f {
			return s
		}
		s += "."
		nnd := 0
		nndFound := false
		for i := 0; i < 18; i++ {
			f -= math.Trunc(f)
			f *= 10
			d := uint64(f)
			s += fmt.Sprintf("%v", d)
			if d != 0 && !nndFound {
				nndFound = true
			}
			if nndFound {
				nnd++
				if nnd >= 4 {
					for strings.HasSuffix(s, "0") {
						s = strings.TrimSuffix(s, "0")
					}
					s = strings.TrimSuffix(s, ".")
					break
				}
			}
		}
	}

	return s
}

// SolString renders a lamport amount as SOL for display only.
func SolString(lamports int64) string {
	return NicePrice(float64(lamports)/float64(LamportsPerSol), -1)
}

func ShortenAddress(address string) string {
	l := len(address)
	if l < 14 {
		return ""
	}

	return address[:8] + "..." + address[l-6:]
}
