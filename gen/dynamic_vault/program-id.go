package dynamicvault

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the dynamic vault program address.
var ProgramID = solanago.MustPublicKeyFromBase58("24Uqj9JCLxUeoC3hGfh5W3s9FM9uCHDS2SG3LYwBpyTi")

// BaseKey seeds vault PDA derivation.
var BaseKey = solanago.MustPublicKeyFromBase58("HWzXGcGHy4tcpYfaRDCyLNzXqBTv3E6BttpCH2vJxArv")
