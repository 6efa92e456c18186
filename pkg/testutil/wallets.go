package testutil

// RecoveryChallenge is the digest the wallet signatures below were made over.
const RecoveryChallenge = "0xa1de988600a42c4b4ab089b619297c17d53cffae5d5120d82d8a92d0bb3b78f2"

// WalletVector is a 65-byte r||s||v signature over RecoveryChallenge exported
// from a real wallet, with the address that produced it.
type WalletVector struct {
	Name      string
	Address   string
	Signature string
}

// WalletVectors covers the v encodings seen in the field: 27/28 and 0/1.
var WalletVectors = []WalletVector{
	{
		Name:      "trust wallet",
		Address:   "0xB0A6Ed7Fa5C6C5cc507840924591C1494eF47D04",
		Signature: "0xb5354ef622856f2acd9926752828d609b74471fa349891c70ec4512da5b7b8695418c39d82057dc09c480e8e65c5362327e882033e670e24b6a701983d93e18e1c",
	},
	{
		Name:      "ledger nano s",
		Address:   "0x4A6bBDa876699420965147c26C3F3DF0bDc8eCab",
		Signature: "0xbad1a0d53be0e56724d877e053a199ca732c5e6e40d129c5a0980aa7d2c6582166af81969b23004ae81694e9518dcf39eb3af71d2847409376151f03465a0bf600",
	},
	{
		Name:      "metamask",
		Address:   "0xFB7ce0578B4dc16803A3CB04fA0b286fCFfFF76d",
		Signature: "0x1e1769b8ca9ca3d7d4b747f15336c185aac391c89cd9b9bfaf26f0a38631690e64ccd925382278c055c527a58ffab853a9734d889a6bae2b920544645f8ce4361c",
	},
	{
		Name:      "trezor",
		Address:   "0xbc89Bea7B6156be4514f5D429e30240F4C2600e4",
		Signature: "0x884d210ebc1437a56e4507c47a5fadcf1076ef366d37d23937a515e8af63075605fbb6be98a9c9dd41bfc68b57795c79375ef10e34a8bf90701a2200ff5cc59d1b",
	},
}
