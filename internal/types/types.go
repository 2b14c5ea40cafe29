// README: Common identifier value object used across modules.
package types

type ID string
