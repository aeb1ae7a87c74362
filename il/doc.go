// This file documents the IL text format accepted by Load.
//
// Example:
//
//	; Tiny BASIC statement dispatch (excerpt)
//	STMT:   TST   STPRT,'PRINT'
//	        ICALL EXPR
//	DONE
//	STPRT:  TST   STIF,'IF'
//	        ...
//	ERRENT: NLINE
//	        IJMP  CO
//
// Labels are case-sensitive; opcodes are folded to upper case so `tst`
// and `TST` are equivalent. Operands are left exactly as written except
// for the quote-stripping and DB rules described on Load.
package il
