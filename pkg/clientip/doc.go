// Package clientip extracts the client IP address from HTTP requests.
//
// Proxy headers are checked in this order, and the first valid address wins:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//  5. RemoteAddr (direct connection)
//
// Addresses are validated with net.ParseIP and normalized; 0.0.0.0 and :: are
// rejected. If nothing valid is found the raw RemoteAddr is returned.
//
//	key := clientip.GetIP(r)
//
// Headers are client-controlled unless a trusted proxy overwrites them, so do not
// use the result for authorization.
package clientip
